package custody

import (
	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

// Adapter gives the ledgers one interface over both asset accounting
// models. VerifyAndEscrow pulls an asset into engine custody after checking
// ownership and approval; Release performs the inverse transfer out of
// custody to a buyer, winner or the original seller.
//
// Release failures are always surfaced; the enclosing operation must treat
// them as fatal and roll back everything it already did.
type Adapter interface {
	VerifyAndEscrow(ctx ctx.Ctx, asset domain.AssetRef, from domain.Address, quantity int64) error
	Release(ctx ctx.Ctx, asset domain.AssetRef, quantity int64, to domain.Address) error
}
