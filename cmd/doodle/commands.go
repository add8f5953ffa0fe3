package main

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/doodle"
	"github.com/doodlepoker/waspclient/pkg/journal"
	"github.com/doodlepoker/waspclient/pkg/log"
	"github.com/doodlepoker/waspclient/pkg/service"
)

// iotaExp scales raw iotas to Mi for display.
const iotaExp = -6

func fmtIOTA(amount uint64) string {
	return fmtMi(decimal.NewFromBigInt(new(big.Int).SetUint64(amount), iotaExp))
}

func fmtMi(value decimal.Decimal) string {
	if value.Equal(value.Floor()) {
		return value.StringFixed(1) + " Mi"
	}
	return value.String() + " Mi"
}

func (o *Operator) newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	t.AppendHeader(header)
	t.AppendSeparator()
	return t
}

func (o *Operator) handleAddress() {
	agent, ok := o.agentID()
	if !ok {
		return
	}
	fmt.Fprintf(o.out, "Address: %s\nAgent ID: %s\n", agent.Address(), agent)
}

func (o *Operator) handleTables() {
	count, err := o.doodle.TableCount(o.ctx)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to get table count: %s\n", err.Error())
		return
	}

	t := o.newTable(table.Row{"Table", "Seats", "Hand", "Pots", "Small Blind", "Big Blind"})
	for i := uint32(0); i < count; i++ {
		info, err := o.doodle.TableInfo(o.ctx, i)
		if err != nil {
			fmt.Fprintf(o.out, "Failed to get table %d: %s\n", i, err.Error())
			continue
		}
		t.AppendRow(table.Row{i, info.Size, info.HandInProgress, info.PotsCount, info.SmallBlindInSeatNumber, info.BigBlindInSeatNumber})
	}
	t.Render()
}

func (o *Operator) handleTable(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: table <table>")
		return
	}
	tableNumber, err := parseTable(args[1])
	if err != nil {
		fmt.Fprintln(o.out, err.Error())
		return
	}

	info, err := o.doodle.TableInfo(o.ctx, tableNumber)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to get table %d: %s\n", tableNumber, err.Error())
		return
	}
	fmt.Fprintf(o.out, "Table %d: hand in progress %t, %d pots\n", tableNumber, info.HandInProgress, info.PotsCount)

	t := o.newTable(table.Row{"Seat", "Agent", "Chips", "In Hand", "Joining"})
	for seat := uint16(0); seat < info.Size; seat++ {
		ts, err := o.doodle.TableSeat(o.ctx, tableNumber, seat)
		if err != nil {
			t.AppendRow(table.Row{seat, "N/A", "", "", ""})
			continue
		}
		t.AppendRow(table.Row{seat, ts.AgentID, ts.ChipCount, ts.IsInHand, joining(ts.JoiningNextHand, ts.JoiningNextBigBlind)})
	}
	t.Render()
}

func joining(nextHand, nextBigBlind bool) string {
	switch {
	case nextHand:
		return "next hand"
	case nextBigBlind:
		return "next big blind"
	default:
		return ""
	}
}

func (o *Operator) handleSeat(args []string) {
	tableNumber, seat, ok := o.parseTableAnd(args, "seat")
	if !ok {
		return
	}
	ts, err := o.doodle.TableSeat(o.ctx, tableNumber, seat)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to get seat: %s\n", err.Error())
		return
	}

	t := o.newTable(table.Row{"Agent", "Chips", "In Hand", "Joining"})
	t.AppendRow(table.Row{ts.AgentID, ts.ChipCount, ts.IsInHand, joining(ts.JoiningNextHand, ts.JoiningNextBigBlind)})
	t.Render()
}

func (o *Operator) handlePot(args []string) {
	tableNumber, pot, ok := o.parseTableAnd(args, "pot")
	if !ok {
		return
	}
	info, err := o.doodle.PotInfo(o.ctx, tableNumber, pot)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to get pot: %s\n", err.Error())
		return
	}
	fmt.Fprintf(o.out, "Pot %d of table %d: %d chips\n", pot, tableNumber, info.PotSize)
}

func (o *Operator) handleJoin(args []string, build func(uint32, uint16) service.Func) {
	tableNumber, seat, ok := o.parseTableAnd(args, "seat")
	if !ok {
		return
	}
	f := build(tableNumber, seat)
	// Without a wallet the fee rides on an off-ledger request.
	f.OnLedger = o.session.HasWallet()
	fmt.Fprintf(o.out, "Joining table %d seat %d with a fee of %s\n", tableNumber, seat, fmtIOTA(f.Transfer.Get(codec.IOTAColor)))
	o.post(f)
}

func (o *Operator) handleLeave(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: leave <table>")
		return
	}
	tableNumber, err := parseTable(args[1])
	if err != nil {
		fmt.Fprintln(o.out, err.Error())
		return
	}
	o.post(doodle.LeaveTableFunc(tableNumber))
}

func (o *Operator) post(f service.Func) {
	lg := log.FromContext(o.ctx).WithKV("func", f.Name)
	res, err := o.session.Post(o.ctx, f)
	if err != nil {
		lg.Debug("Post failed", "error", err)
		fmt.Fprintf(o.out, "%s failed: %s\n", f.Name, err.Error())
		return
	}
	lg.Debug("Posted", "requestID", res.RequestID, "transactionID", res.TransactionID)
	if res.TransactionID != "" {
		fmt.Fprintf(o.out, "Posted %s in transaction %s\n", f.Name, res.TransactionID)
		return
	}
	fmt.Fprintf(o.out, "Posted %s as request %s\n", f.Name, res.RequestID)
}

func (o *Operator) handleBalance() {
	agent, ok := o.agentID()
	if !ok {
		return
	}
	balance, err := o.accounts.Balance(o.ctx, agent)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to get balance: %s\n", err.Error())
		return
	}
	fmt.Fprintf(o.out, "Balance: %s\n", fmtMi(decimal.New(balance, iotaExp)))
}

func (o *Operator) handleHistory() {
	records, err := o.history.Recent(o.ctx, historySize)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to read history: %s\n", err.Error())
		return
	}

	t := o.newTable(table.Row{"Time", "Kind", "Entrypoint", "Request", "Transaction"})
	for _, r := range records {
		t.AppendRow(table.Row{r.CreatedAt.Format(time.RFC3339), r.Kind, r.Entrypoint, r.RequestID, r.TransactionID})
	}
	t.Render()
}

func (o *Operator) handleWait(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(o.out, "Usage: wait <request id>")
		return
	}
	reqID, err := codec.ParseRequestID(args[1])
	if err != nil {
		fmt.Fprintf(o.out, "Invalid request id: %s\n", err.Error())
		return
	}

	if err := o.session.WaitRequest(o.ctx, reqID); err != nil {
		fmt.Fprintf(o.out, "Failed to wait for request: %s\n", err.Error())
		return
	}

	record, err := o.history.ByRequestID(o.ctx, reqID.String())
	switch {
	case errors.Is(err, journal.ErrNotFound):
		fmt.Fprintf(o.out, "Request %s processed\n", reqID)
	case err != nil:
		fmt.Fprintf(o.out, "Request %s processed, journal lookup failed: %s\n", reqID, err.Error())
	default:
		fmt.Fprintf(o.out, "Request %s (%s) processed\n", reqID, record.Entrypoint)
	}
}

func (o *Operator) handleBlock() {
	latest, err := o.blocklog.LatestBlockInfo(o.ctx)
	if err != nil {
		fmt.Fprintf(o.out, "Failed to get latest block: %s\n", err.Error())
		return
	}
	fmt.Fprintf(o.out, "Latest block: %d (%d bytes of block info)\n", latest.BlockIndex, len(latest.BlockInfo))
}
