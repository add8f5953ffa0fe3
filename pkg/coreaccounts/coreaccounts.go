// Package coreaccounts binds the chain's built-in accounts contract.
package coreaccounts

import (
	"context"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/service"
)

const (
	ScName              = "accounts"
	HScName codec.Hname = 0x3c4b5e02
)

const (
	ParamAgentID        = "a"
	ParamWithdrawAmount = "m"
	ParamWithdrawColor  = "c"

	ResultAccountNonce = "n"
	ResultAgents       = "this"
	ResultBalances     = "this"
)

const (
	FuncDeposit  = "deposit"
	FuncHarvest  = "harvest"
	FuncWithdraw = "withdraw"

	ViewAccounts        = "accounts"
	ViewBalance         = "balance"
	ViewGetAccountNonce = "getAccountNonce"
	ViewTotalAssets     = "totalAssets"
)

const (
	HFuncDeposit  codec.Hname = 0xbdc9102d
	HFuncHarvest  codec.Hname = 0x7b40efbd
	HFuncWithdraw codec.Hname = 0x9dcc0f41
)

// DepositFunc credits the attached transfer to agent, or to the sender when
// agent is nil.
func DepositFunc(agent *codec.AgentID, transfer *codec.Transfer) service.Func {
	var args *codec.Arguments
	if agent != nil {
		args = codec.NewArguments()
		args.SetAgentID(ParamAgentID, *agent)
	}
	return service.Func{Name: FuncDeposit, HFunc: HFuncDeposit, Contract: HScName, Args: args, Transfer: transfer}
}

// HarvestFunc moves fees from the chain account to the chain owner. A zero
// amount harvests everything of color.
func HarvestFunc(amount int64, color codec.Color) service.Func {
	args := codec.NewArguments()
	if amount != 0 {
		args.SetInt64(ParamWithdrawAmount, amount)
	}
	args.SetColor(ParamWithdrawColor, color)
	return service.Func{Name: FuncHarvest, HFunc: HFuncHarvest, Contract: HScName, Args: args}
}

func WithdrawFunc() service.Func {
	return service.Func{Name: FuncWithdraw, HFunc: HFuncWithdraw, Contract: HScName}
}

func agentArgs(agent codec.AgentID) *codec.Arguments {
	args := codec.NewArguments()
	args.Require(ParamAgentID)
	args.SetAgentID(ParamAgentID, agent)
	return args
}

func AccountsView() service.View {
	return service.View{Name: ViewAccounts, Contract: HScName}
}

func BalanceView(agent codec.AgentID) service.View {
	return service.View{Name: ViewBalance, Contract: HScName, Args: agentArgs(agent)}
}

func GetAccountNonceView(agent codec.AgentID) service.View {
	return service.View{Name: ViewGetAccountNonce, Contract: HScName, Args: agentArgs(agent)}
}

func TotalAssetsView() service.View {
	return service.View{Name: ViewTotalAssets, Contract: HScName}
}

type Client struct {
	caller service.Caller
}

func NewClient(caller service.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) Deposit(ctx context.Context, agent *codec.AgentID, transfer *codec.Transfer) (service.PostResult, error) {
	return c.caller.Post(ctx, DepositFunc(agent, transfer))
}

func (c *Client) Harvest(ctx context.Context, amount int64, color codec.Color) (service.PostResult, error) {
	return c.caller.Post(ctx, HarvestFunc(amount, color))
}

func (c *Client) Withdraw(ctx context.Context) (service.PostResult, error) {
	return c.caller.Post(ctx, WithdrawFunc())
}

// Accounts returns the raw agent list.
func (c *Client) Accounts(ctx context.Context) ([]byte, error) {
	res, err := c.caller.Call(ctx, AccountsView())
	if err != nil {
		return nil, err
	}
	return res.GetBytes(ResultAgents)
}

func (c *Client) Balance(ctx context.Context, agent codec.AgentID) (int64, error) {
	res, err := c.caller.Call(ctx, BalanceView(agent))
	if err != nil {
		return 0, err
	}
	return res.GetInt64(ResultBalances)
}

func (c *Client) AccountNonce(ctx context.Context, agent codec.AgentID) (int64, error) {
	res, err := c.caller.Call(ctx, GetAccountNonceView(agent))
	if err != nil {
		return 0, err
	}
	return res.GetInt64(ResultAccountNonce)
}

func (c *Client) TotalAssets(ctx context.Context) (int64, error) {
	res, err := c.caller.Call(ctx, TotalAssetsView())
	if err != nil {
		return 0, err
	}
	return res.GetInt64(ResultBalances)
}
