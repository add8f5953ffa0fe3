package doodle

import (
	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/service"
)

func seatArgs(table uint32, seat uint16) *codec.Arguments {
	args := codec.NewArguments()
	args.Require(ParamTableNumber, ParamTableSeatNumber)
	args.SetUint32(ParamTableNumber, table)
	args.SetUint16(ParamTableSeatNumber, seat)
	return args
}

func InitFunc() service.Func {
	return service.Func{Name: FuncInit, HFunc: HFuncInit, Contract: HScName}
}

// JoinNextBigBlindFunc seats the caller at the next big blind. It goes on
// ledger with JoinFee attached.
func JoinNextBigBlindFunc(table uint32, seat uint16) service.Func {
	return service.Func{
		Name:     FuncJoinNextBigBlind,
		HFunc:    HFuncJoinNextBigBlind,
		Contract: HScName,
		Args:     seatArgs(table, seat),
		Transfer: codec.IOTAs(JoinFee),
		OnLedger: true,
	}
}

// JoinNextHandFunc seats the caller for the next hand. It goes on ledger
// with JoinFee attached.
func JoinNextHandFunc(table uint32, seat uint16) service.Func {
	return service.Func{
		Name:     FuncJoinNextHand,
		HFunc:    HFuncJoinNextHand,
		Contract: HScName,
		Args:     seatArgs(table, seat),
		Transfer: codec.IOTAs(JoinFee),
		OnLedger: true,
	}
}

func LeaveTableFunc(table uint32) service.Func {
	args := codec.NewArguments()
	args.Require(ParamTableNumber)
	args.SetUint32(ParamTableNumber, table)
	return service.Func{Name: FuncLeaveTable, HFunc: HFuncLeaveTable, Contract: HScName, Args: args}
}

func GetPotInfoView(table uint32, pot uint16) service.View {
	args := codec.NewArguments()
	args.Require(ParamPotNumber, ParamTableNumber)
	args.SetUint16(ParamPotNumber, pot)
	args.SetUint32(ParamTableNumber, table)
	return service.View{Name: ViewGetPotInfo, Contract: HScName, Args: args}
}

func GetTableCountView() service.View {
	return service.View{Name: ViewGetTableCount, Contract: HScName}
}

func GetTableInfoView(table uint32) service.View {
	args := codec.NewArguments()
	args.Require(ParamTableNumber)
	args.SetUint32(ParamTableNumber, table)
	return service.View{Name: ViewGetTableInfo, Contract: HScName, Args: args}
}

func GetTableSeatView(table uint32, seat uint16) service.View {
	return service.View{Name: ViewGetTableSeat, Contract: HScName, Args: seatArgs(table, seat)}
}
