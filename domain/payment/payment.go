package payment

import (
	"math/big"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

// Treasury moves value between principals. The engine uses it to pull
// attached payments into escrow, to fan sale proceeds out to seller,
// royalty recipient and fee recipient, and to pay pull-payment withdrawals.
//
// A Transfer either fully succeeds or fully fails; the engine relies on
// that to compensate completed legs when a later leg fails.
type Treasury interface {
	Transfer(ctx ctx.Ctx, from, to domain.Address, amount *big.Int) error
	BalanceOf(ctx ctx.Ctx, owner domain.Address) (*big.Int, error)
}
