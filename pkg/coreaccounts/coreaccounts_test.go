package coreaccounts_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/coreaccounts"
	"github.com/doodlepoker/waspclient/pkg/service"
)

type fakeCaller struct {
	posted  []service.Func
	viewed  []service.View
	results *codec.Results
}

func (f *fakeCaller) Post(_ context.Context, fn service.Func) (service.PostResult, error) {
	f.posted = append(f.posted, fn)
	return service.PostResult{}, nil
}

func (f *fakeCaller) Call(_ context.Context, v service.View) (*codec.Results, error) {
	f.viewed = append(f.viewed, v)
	return f.results, nil
}

func TestDepositFunc(t *testing.T) {
	t.Parallel()

	f := coreaccounts.DepositFunc(nil, codec.IOTAs(10))
	assert.Nil(t, f.Args)
	assert.Equal(t, coreaccounts.HFuncDeposit, f.HFunc)
	assert.Equal(t, coreaccounts.HScName, f.Contract)
	assert.Equal(t, uint64(10), f.Transfer.Get(codec.IOTAColor))

	agent := codec.NewAgentID(codec.Address{1}, 0)
	f = coreaccounts.DepositFunc(&agent, nil)
	assert.Equal(t, []string{coreaccounts.ParamAgentID}, f.Args.Keys())
}

func TestHarvestFunc(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{coreaccounts.ParamWithdrawColor}, coreaccounts.HarvestFunc(0, codec.IOTAColor).Args.Keys())
	assert.Equal(t,
		[]string{coreaccounts.ParamWithdrawAmount, coreaccounts.ParamWithdrawColor},
		coreaccounts.HarvestFunc(5, codec.IOTAColor).Args.Keys())
}

func TestClient_Posts(t *testing.T) {
	t.Parallel()

	caller := &fakeCaller{}
	c := coreaccounts.NewClient(caller)
	ctx := context.Background()

	_, err := c.Deposit(ctx, nil, codec.IOTAs(1))
	require.NoError(t, err)
	_, err = c.Harvest(ctx, 0, codec.IOTAColor)
	require.NoError(t, err)
	_, err = c.Withdraw(ctx)
	require.NoError(t, err)

	require.Len(t, caller.posted, 3)
	assert.Equal(t, coreaccounts.HFuncWithdraw, caller.posted[2].HFunc)
	assert.False(t, caller.posted[2].OnLedger)
}

func TestClient_Views(t *testing.T) {
	t.Parallel()

	results := codec.NewResults()
	results.Put(coreaccounts.ResultAccountNonce, binary.LittleEndian.AppendUint64(nil, 12))
	results.Put(coreaccounts.ResultBalances, binary.LittleEndian.AppendUint64(nil, 3000))
	caller := &fakeCaller{results: results}
	c := coreaccounts.NewClient(caller)
	ctx := context.Background()
	agent := codec.NewAgentID(codec.Address{1}, 0)

	nonce, err := c.AccountNonce(ctx, agent)
	require.NoError(t, err)
	assert.Equal(t, int64(12), nonce)

	balance, err := c.Balance(ctx, agent)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), balance)

	total, err := c.TotalAssets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), total)

	require.Len(t, caller.viewed, 3)
	assert.Equal(t, coreaccounts.ViewGetAccountNonce, caller.viewed[0].Name)
	assert.Equal(t, coreaccounts.HScName, caller.viewed[0].Contract)
	require.NoError(t, caller.viewed[0].Args.Validate())
	assert.Nil(t, caller.viewed[2].Args)
}

func TestClient_Accounts(t *testing.T) {
	t.Parallel()

	results := codec.NewResults()
	results.Put(coreaccounts.ResultAgents, []byte{1, 2, 3})

	agents, err := coreaccounts.NewClient(&fakeCaller{results: results}).Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, agents)
}
