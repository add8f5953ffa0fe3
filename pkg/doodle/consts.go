// Package doodle is the typed client binding of the doodle poker contract.
package doodle

import "github.com/doodlepoker/waspclient/pkg/codec"

const (
	ScName                 = "doodle"
	HScName    codec.Hname = 0xb40a047a
	EventTopic             = ScName + "."
)

// JoinFee is the iota amount sent along with a join request.
const JoinFee uint64 = 200

const (
	ParamPotNumber       = "potNumber"
	ParamTableNumber     = "tableNumber"
	ParamTableSeatNumber = "tableSeatNumber"
)

const (
	ResultAgentID                = "agentId"
	ResultBigBlindInSeatNumber   = "bigBlindInSeatNumber"
	ResultChipCount              = "chipCount"
	ResultHandInProgress         = "handInProgress"
	ResultIsInHand               = "isInHand"
	ResultJoiningNextBigBlind    = "joiningNextBigBlind"
	ResultJoiningNextHand        = "joiningNextHand"
	ResultPotSize                = "potSize"
	ResultPotsCount              = "potsCount"
	ResultSize                   = "size"
	ResultSmallBlindInSeatNumber = "smallBlindInSeatNumber"
	ResultTableCount             = "tableCount"
)

const (
	FuncInit             = "init"
	FuncJoinNextBigBlind = "joinNextBigBlind"
	FuncJoinNextHand     = "joinNextHand"
	FuncLeaveTable       = "leaveTable"
	ViewGetPotInfo       = "getPotInfo"
	ViewGetTableCount    = "getTableCount"
	ViewGetTableInfo     = "getTableInfo"
	ViewGetTableSeat     = "getTableSeat"
)

var (
	HFuncInit             = codec.HnameFromName(FuncInit)
	HFuncJoinNextBigBlind = codec.HnameFromName(FuncJoinNextBigBlind)
	HFuncJoinNextHand     = codec.HnameFromName(FuncJoinNextHand)
	HFuncLeaveTable       = codec.HnameFromName(FuncLeaveTable)
)
