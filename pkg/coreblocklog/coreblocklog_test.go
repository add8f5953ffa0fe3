package coreblocklog_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/coreblocklog"
	"github.com/doodlepoker/waspclient/pkg/service"
)

type fakeCaller struct {
	viewed  []service.View
	results *codec.Results
}

func (f *fakeCaller) Post(context.Context, service.Func) (service.PostResult, error) {
	return service.PostResult{}, nil
}

func (f *fakeCaller) Call(_ context.Context, v service.View) (*codec.Results, error) {
	f.viewed = append(f.viewed, v)
	return f.results, nil
}

func TestControlAddresses(t *testing.T) {
	t.Parallel()

	governing := codec.Address{0, 1}
	controller := codec.Address{0, 2}
	results := codec.NewResults()
	results.Put(coreblocklog.ResultBlockIndex, binary.LittleEndian.AppendUint32(nil, 8))
	results.Put(coreblocklog.ResultGoverningAddress, governing[:])
	results.Put(coreblocklog.ResultStateControllerAddress, controller[:])
	caller := &fakeCaller{results: results}

	out, err := coreblocklog.NewClient(caller).ControlAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, coreblocklog.ControlAddresses{
		BlockIndex:             8,
		GoverningAddress:       governing,
		StateControllerAddress: controller,
	}, out)
	assert.Equal(t, coreblocklog.HScName, caller.viewed[0].Contract)
}

func TestRequestReceipt(t *testing.T) {
	t.Parallel()

	results := codec.NewResults()
	results.Put(coreblocklog.ResultBlockIndex, binary.LittleEndian.AppendUint32(nil, 3))
	results.Put(coreblocklog.ResultRequestIndex, binary.LittleEndian.AppendUint16(nil, 1))
	results.Put(coreblocklog.ResultRequestRecord, []byte("record"))
	caller := &fakeCaller{results: results}
	reqID := codec.NewRequestID(codec.HashData([]byte("req")), 0)

	out, err := coreblocklog.NewClient(caller).RequestReceipt(context.Background(), reqID)
	require.NoError(t, err)
	assert.Equal(t, coreblocklog.RequestReceipt{BlockIndex: 3, RequestIndex: 1, RequestRecord: []byte("record")}, out)

	args := caller.viewed[0].Args
	require.NoError(t, args.Validate())
	assert.Equal(t, []string{coreblocklog.ParamRequestID}, args.Keys())
}

func TestEventsForContract_OptionalRange(t *testing.T) {
	t.Parallel()

	results := codec.NewResults()
	results.Put(coreblocklog.ResultEvent, []byte("e"))
	caller := &fakeCaller{results: results}
	c := coreblocklog.NewClient(caller)
	ctx := context.Background()

	_, err := c.EventsForContract(ctx, 0xb40a047a, coreblocklog.EventsForContractRange{})
	require.NoError(t, err)
	_, err = c.EventsForContract(ctx, 0xb40a047a, coreblocklog.EventsForContractRange{FromBlock: 1, ToBlock: 9})
	require.NoError(t, err)

	assert.Equal(t, []string{coreblocklog.ParamContractHname}, caller.viewed[0].Args.Keys())
	assert.Equal(t,
		[]string{coreblocklog.ParamContractHname, coreblocklog.ParamFromBlock, coreblocklog.ParamToBlock},
		caller.viewed[1].Args.Keys())
}

func TestBlockViews(t *testing.T) {
	t.Parallel()

	reqID := codec.NewRequestID(codec.HashData([]byte("req")), 0)
	results := codec.NewResults()
	results.Put(coreblocklog.ResultBlockIndex, binary.LittleEndian.AppendUint32(nil, 5))
	results.Put(coreblocklog.ResultBlockInfo, []byte("info"))
	results.Put(coreblocklog.ResultEvent, []byte("events"))
	results.Put(coreblocklog.ResultRequestID, reqID[:])
	results.Put(coreblocklog.ResultRequestRecord, []byte("records"))
	results.Put(coreblocklog.ResultRequestProcessed, []byte("+"))
	caller := &fakeCaller{results: results}
	c := coreblocklog.NewClient(caller)
	ctx := context.Background()

	info, err := c.BlockInfo(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("info"), info)

	latest, err := c.LatestBlockInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, coreblocklog.LatestBlockInfo{BlockIndex: 5, BlockInfo: []byte("info")}, latest)

	ids, err := c.RequestIDsForBlock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, reqID, ids)

	receipts, err := c.RequestReceiptsForBlock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("records"), receipts)

	processed, err := c.IsRequestProcessed(ctx, reqID)
	require.NoError(t, err)
	assert.Equal(t, "+", processed)

	ev, err := c.EventsForBlock(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("events"), ev)

	ev, err = c.EventsForRequest(ctx, reqID)
	require.NoError(t, err)
	assert.Equal(t, []byte("events"), ev)

	names := make([]string, 0, len(caller.viewed))
	for _, v := range caller.viewed {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{
		coreblocklog.ViewGetBlockInfo,
		coreblocklog.ViewGetLatestBlockInfo,
		coreblocklog.ViewGetRequestIDsForBlock,
		coreblocklog.ViewGetRequestReceiptsForBlock,
		coreblocklog.ViewIsRequestProcessed,
		coreblocklog.ViewGetEventsForBlock,
		coreblocklog.ViewGetEventsForRequest,
	}, names)
}
