package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/coreaccounts"
	"github.com/doodlepoker/waspclient/pkg/coreblocklog"
	"github.com/doodlepoker/waspclient/pkg/doodle"
	"github.com/doodlepoker/waspclient/pkg/journal"
	"github.com/doodlepoker/waspclient/pkg/service"
	"github.com/doodlepoker/waspclient/pkg/sign"
)

const historySize = 20

// Session is the part of a service.Service the operator drives.
type Session interface {
	service.Caller
	ChainID() codec.ChainID
	KeyPair() sign.Signer
	HasWallet() bool
	WaitRequest(ctx context.Context, reqID codec.RequestID) error
}

// History lists journaled requests. *journal.Store implements it.
type History interface {
	Recent(ctx context.Context, limit int) ([]journal.RecordDTO, error)
	ByRequestID(ctx context.Context, requestID string) (*journal.RecordDTO, error)
}

type Operator struct {
	ctx      context.Context
	session  Session
	doodle   *doodle.Client
	accounts *coreaccounts.Client
	blocklog *coreblocklog.Client
	history  History
	out      io.Writer

	exitCh chan struct{}
}

func NewOperator(ctx context.Context, session Session, history History, out io.Writer) *Operator {
	return &Operator{
		ctx:      ctx,
		session:  session,
		doodle:   doodle.NewClient(session),
		accounts: coreaccounts.NewClient(session),
		blocklog: coreblocklog.NewClient(session),
		history:  history,
		out:      out,
		exitCh:   make(chan struct{}),
	}
}

func (o *Operator) Complete(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(o.complete(d), d.GetWordBeforeCursor(), true)
}

func (o *Operator) complete(d prompt.Document) []prompt.Suggest {
	args := strings.Split(d.TextBeforeCursor(), " ")
	if len(args) >= 2 {
		return nil
	}
	return []prompt.Suggest{
		{Text: "chain", Description: "Show the chain in use"},
		{Text: "address", Description: "Show the address and agent id of the key pair"},
		{Text: "tables", Description: "List all tables"},
		{Text: "table", Description: "Show the seats of a table: table <table>"},
		{Text: "seat", Description: "Show a seat: seat <table> <seat>"},
		{Text: "pot", Description: "Show a pot: pot <table> <pot>"},
		{Text: "join", Description: "Join the next hand: join <table> <seat>"},
		{Text: "join-bb", Description: "Join at the next big blind: join-bb <table> <seat>"},
		{Text: "leave", Description: "Leave a table: leave <table>"},
		{Text: "balance", Description: "Show the on-chain balance of the key pair"},
		{Text: "block", Description: "Show the latest block of the chain"},
		{Text: "history", Description: "List recently posted requests"},
		{Text: "wait", Description: "Wait until the node has processed a request: wait <request id>"},
		{Text: "exit", Description: "Exit the application"},
	}
}

func (o *Operator) Execute(s string) {
	args := strings.Fields(s)
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "chain":
		fmt.Fprintf(o.out, "Chain: %s\n", o.session.ChainID())
	case "address":
		o.handleAddress()
	case "tables":
		o.handleTables()
	case "table":
		o.handleTable(args)
	case "seat":
		o.handleSeat(args)
	case "pot":
		o.handlePot(args)
	case "join":
		o.handleJoin(args, doodle.JoinNextHandFunc)
	case "join-bb":
		o.handleJoin(args, doodle.JoinNextBigBlindFunc)
	case "leave":
		o.handleLeave(args)
	case "balance":
		o.handleBalance()
	case "block":
		o.handleBlock()
	case "history":
		o.handleHistory()
	case "wait":
		o.handleWait(args)
	case "exit":
		o.exit()
	default:
		fmt.Fprintf(o.out, "Unknown command: %s\n", s)
	}
}

func (o *Operator) Wait() <-chan struct{} {
	return o.exitCh
}

func (o *Operator) exit() {
	select {
	case <-o.exitCh:
	default:
		close(o.exitCh)
	}
}

// agentID is the agent of the key pair's address, or false without one.
func (o *Operator) agentID() (codec.AgentID, bool) {
	signer := o.session.KeyPair()
	if signer == nil {
		fmt.Fprintln(o.out, "No key pair configured.")
		return codec.AgentID{}, false
	}
	return codec.NewAgentID(signer.PublicKey().Address(), 0), true
}

func parseTable(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid table number %q", s)
	}
	return uint32(v), nil
}

func parseSmall(name, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number %q", name, s)
	}
	return uint16(v), nil
}

// parseTableAnd parses "<cmd> <table> <name>" arguments.
func (o *Operator) parseTableAnd(args []string, name string) (uint32, uint16, bool) {
	if len(args) < 3 {
		fmt.Fprintf(o.out, "Usage: %s <table> <%s>\n", args[0], name)
		return 0, 0, false
	}
	table, err := parseTable(args[1])
	if err != nil {
		fmt.Fprintln(o.out, err.Error())
		return 0, 0, false
	}
	n, err := parseSmall(name, args[2])
	if err != nil {
		fmt.Fprintln(o.out, err.Error())
		return 0, 0, false
	}
	return table, n, true
}
