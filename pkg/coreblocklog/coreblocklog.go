// Package coreblocklog binds the chain's built-in block log contract. All of
// its entry points are views.
package coreblocklog

import (
	"context"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/service"
)

const (
	ScName              = "blocklog"
	HScName codec.Hname = 0xf538ef2b
)

const (
	ParamBlockIndex    = "n"
	ParamContractHname = "h"
	ParamFromBlock     = "f"
	ParamRequestID     = "u"
	ParamToBlock       = "t"

	ResultBlockIndex             = "n"
	ResultBlockInfo              = "i"
	ResultEvent                  = "e"
	ResultGoverningAddress       = "g"
	ResultRequestID              = "u"
	ResultRequestIndex           = "r"
	ResultRequestProcessed       = "p"
	ResultRequestRecord          = "d"
	ResultStateControllerAddress = "s"
)

const (
	ViewControlAddresses           = "controlAddresses"
	ViewGetBlockInfo               = "getBlockInfo"
	ViewGetEventsForBlock          = "getEventsForBlock"
	ViewGetEventsForContract       = "getEventsForContract"
	ViewGetEventsForRequest        = "getEventsForRequest"
	ViewGetLatestBlockInfo         = "getLatestBlockInfo"
	ViewGetRequestIDsForBlock      = "getRequestIDsForBlock"
	ViewGetRequestReceipt          = "getRequestReceipt"
	ViewGetRequestReceiptsForBlock = "getRequestReceiptsForBlock"
	ViewIsRequestProcessed         = "isRequestProcessed"
)

type ControlAddresses struct {
	BlockIndex             int32
	GoverningAddress       codec.Address
	StateControllerAddress codec.Address
}

type LatestBlockInfo struct {
	BlockIndex int32
	BlockInfo  []byte
}

type RequestReceipt struct {
	BlockIndex    int32
	RequestIndex  int16
	RequestRecord []byte
}

func view(name string, args *codec.Arguments) service.View {
	return service.View{Name: name, Contract: HScName, Args: args}
}

func blockArgs(block int32) *codec.Arguments {
	args := codec.NewArguments()
	args.Require(ParamBlockIndex)
	args.SetInt32(ParamBlockIndex, block)
	return args
}

func requestArgs(reqID codec.RequestID) *codec.Arguments {
	args := codec.NewArguments()
	args.Require(ParamRequestID)
	args.SetRequestID(ParamRequestID, reqID)
	return args
}

// EventsForContractRange bounds GetEventsForContract. Zero fields are left
// to the node's defaults.
type EventsForContractRange struct {
	FromBlock int32
	ToBlock   int32
}

func eventsForContractArgs(contract codec.Hname, r EventsForContractRange) *codec.Arguments {
	args := codec.NewArguments()
	args.Require(ParamContractHname)
	args.SetHname(ParamContractHname, contract)
	if r.FromBlock != 0 {
		args.SetInt32(ParamFromBlock, r.FromBlock)
	}
	if r.ToBlock != 0 {
		args.SetInt32(ParamToBlock, r.ToBlock)
	}
	return args
}

type Client struct {
	caller service.Caller
}

func NewClient(caller service.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) ControlAddresses(ctx context.Context) (ControlAddresses, error) {
	res, err := c.caller.Call(ctx, view(ViewControlAddresses, nil))
	if err != nil {
		return ControlAddresses{}, err
	}
	var out ControlAddresses
	if out.BlockIndex, err = res.GetInt32(ResultBlockIndex); err != nil {
		return ControlAddresses{}, err
	}
	if out.GoverningAddress, err = res.GetAddress(ResultGoverningAddress); err != nil {
		return ControlAddresses{}, err
	}
	if out.StateControllerAddress, err = res.GetAddress(ResultStateControllerAddress); err != nil {
		return ControlAddresses{}, err
	}
	return out, nil
}

func (c *Client) BlockInfo(ctx context.Context, block int32) ([]byte, error) {
	res, err := c.caller.Call(ctx, view(ViewGetBlockInfo, blockArgs(block)))
	if err != nil {
		return nil, err
	}
	return res.GetBytes(ResultBlockInfo)
}

func (c *Client) LatestBlockInfo(ctx context.Context) (LatestBlockInfo, error) {
	res, err := c.caller.Call(ctx, view(ViewGetLatestBlockInfo, nil))
	if err != nil {
		return LatestBlockInfo{}, err
	}
	var out LatestBlockInfo
	if out.BlockIndex, err = res.GetInt32(ResultBlockIndex); err != nil {
		return LatestBlockInfo{}, err
	}
	if out.BlockInfo, err = res.GetBytes(ResultBlockInfo); err != nil {
		return LatestBlockInfo{}, err
	}
	return out, nil
}

func (c *Client) RequestIDsForBlock(ctx context.Context, block int32) (codec.RequestID, error) {
	res, err := c.caller.Call(ctx, view(ViewGetRequestIDsForBlock, blockArgs(block)))
	if err != nil {
		return codec.RequestID{}, err
	}
	return res.GetRequestID(ResultRequestID)
}

func (c *Client) RequestReceipt(ctx context.Context, reqID codec.RequestID) (RequestReceipt, error) {
	res, err := c.caller.Call(ctx, view(ViewGetRequestReceipt, requestArgs(reqID)))
	if err != nil {
		return RequestReceipt{}, err
	}
	var out RequestReceipt
	if out.BlockIndex, err = res.GetInt32(ResultBlockIndex); err != nil {
		return RequestReceipt{}, err
	}
	if out.RequestIndex, err = res.GetInt16(ResultRequestIndex); err != nil {
		return RequestReceipt{}, err
	}
	if out.RequestRecord, err = res.GetBytes(ResultRequestRecord); err != nil {
		return RequestReceipt{}, err
	}
	return out, nil
}

func (c *Client) RequestReceiptsForBlock(ctx context.Context, block int32) ([]byte, error) {
	res, err := c.caller.Call(ctx, view(ViewGetRequestReceiptsForBlock, blockArgs(block)))
	if err != nil {
		return nil, err
	}
	return res.GetBytes(ResultRequestRecord)
}

// IsRequestProcessed reports the node's answer as-is; the contract returns a
// string flag rather than a bool.
func (c *Client) IsRequestProcessed(ctx context.Context, reqID codec.RequestID) (string, error) {
	res, err := c.caller.Call(ctx, view(ViewIsRequestProcessed, requestArgs(reqID)))
	if err != nil {
		return "", err
	}
	return res.GetString(ResultRequestProcessed)
}

func (c *Client) EventsForRequest(ctx context.Context, reqID codec.RequestID) ([]byte, error) {
	return c.events(ctx, view(ViewGetEventsForRequest, requestArgs(reqID)))
}

func (c *Client) EventsForBlock(ctx context.Context, block int32) ([]byte, error) {
	return c.events(ctx, view(ViewGetEventsForBlock, blockArgs(block)))
}

func (c *Client) EventsForContract(ctx context.Context, contract codec.Hname, r EventsForContractRange) ([]byte, error) {
	return c.events(ctx, view(ViewGetEventsForContract, eventsForContractArgs(contract, r)))
}

func (c *Client) events(ctx context.Context, v service.View) ([]byte, error) {
	res, err := c.caller.Call(ctx, v)
	if err != nil {
		return nil, err
	}
	return res.GetBytes(ResultEvent)
}
