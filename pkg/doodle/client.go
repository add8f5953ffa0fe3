package doodle

import (
	"context"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/service"
)

type PotInfo struct {
	PotSize uint64
}

type TableInfo struct {
	BigBlindInSeatNumber   uint16
	HandInProgress         bool
	PotsCount              uint16
	Size                   uint16
	SmallBlindInSeatNumber uint16
}

type TableSeat struct {
	AgentID             codec.AgentID
	ChipCount           uint64
	IsInHand            bool
	JoiningNextBigBlind bool
	JoiningNextHand     bool
}

// Client wraps a Caller with the doodle entry points.
type Client struct {
	caller service.Caller
}

func NewClient(caller service.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) Init(ctx context.Context) (service.PostResult, error) {
	return c.caller.Post(ctx, InitFunc())
}

func (c *Client) JoinNextBigBlind(ctx context.Context, table uint32, seat uint16) (service.PostResult, error) {
	return c.caller.Post(ctx, JoinNextBigBlindFunc(table, seat))
}

func (c *Client) JoinNextHand(ctx context.Context, table uint32, seat uint16) (service.PostResult, error) {
	return c.caller.Post(ctx, JoinNextHandFunc(table, seat))
}

func (c *Client) LeaveTable(ctx context.Context, table uint32) (service.PostResult, error) {
	return c.caller.Post(ctx, LeaveTableFunc(table))
}

func (c *Client) PotInfo(ctx context.Context, table uint32, pot uint16) (PotInfo, error) {
	res, err := c.caller.Call(ctx, GetPotInfoView(table, pot))
	if err != nil {
		return PotInfo{}, err
	}
	size, err := res.GetUint64(ResultPotSize)
	if err != nil {
		return PotInfo{}, err
	}
	return PotInfo{PotSize: size}, nil
}

func (c *Client) TableCount(ctx context.Context) (uint32, error) {
	res, err := c.caller.Call(ctx, GetTableCountView())
	if err != nil {
		return 0, err
	}
	return res.GetUint32(ResultTableCount)
}

func (c *Client) TableInfo(ctx context.Context, table uint32) (TableInfo, error) {
	res, err := c.caller.Call(ctx, GetTableInfoView(table))
	if err != nil {
		return TableInfo{}, err
	}

	var info TableInfo
	if info.BigBlindInSeatNumber, err = res.GetUint16(ResultBigBlindInSeatNumber); err != nil {
		return TableInfo{}, err
	}
	if info.HandInProgress, err = res.GetBool(ResultHandInProgress); err != nil {
		return TableInfo{}, err
	}
	if info.PotsCount, err = res.GetUint16(ResultPotsCount); err != nil {
		return TableInfo{}, err
	}
	if info.Size, err = res.GetUint16(ResultSize); err != nil {
		return TableInfo{}, err
	}
	if info.SmallBlindInSeatNumber, err = res.GetUint16(ResultSmallBlindInSeatNumber); err != nil {
		return TableInfo{}, err
	}
	return info, nil
}

func (c *Client) TableSeat(ctx context.Context, table uint32, seat uint16) (TableSeat, error) {
	res, err := c.caller.Call(ctx, GetTableSeatView(table, seat))
	if err != nil {
		return TableSeat{}, err
	}

	var ts TableSeat
	if ts.AgentID, err = res.GetAgentID(ResultAgentID); err != nil {
		return TableSeat{}, err
	}
	if ts.ChipCount, err = res.GetUint64(ResultChipCount); err != nil {
		return TableSeat{}, err
	}
	if ts.IsInHand, err = res.GetBool(ResultIsInHand); err != nil {
		return TableSeat{}, err
	}
	if ts.JoiningNextBigBlind, err = res.GetBool(ResultJoiningNextBigBlind); err != nil {
		return TableSeat{}, err
	}
	if ts.JoiningNextHand, err = res.GetBool(ResultJoiningNextHand); err != nil {
		return TableSeat{}, err
	}
	return ts, nil
}
