package request

import (
	"context"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/sign"
)

// OnLedgerPayload describes a contract call carried by a ledger transaction.
type OnLedgerPayload struct {
	Contract   codec.Hname
	Entrypoint codec.Hname
	Args       *codec.Arguments
	Transfer   *codec.Transfer
	Sender     codec.Address
}

// WalletService builds, signs and publishes ledger transactions. amount is
// the number of base tokens sent to the chain along with the payload.
type WalletService interface {
	SendOnLedgerRequest(ctx context.Context, signer sign.Signer, chainID codec.ChainID, payload OnLedgerPayload, amount uint64) (string, error)
}
