package royalty

import (
	"math/big"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

type Source string

const (
	// SourceDynamic means the collection answered a live royalty query.
	SourceDynamic Source = "dynamic"
	// SourceStatic means the statically configured fallback was used.
	SourceStatic Source = "static"
)

// Resolution is the effective royalty for one sale. It is computed fresh
// at settlement time and never persisted beyond the operation.
type Resolution struct {
	Recipient domain.Address
	Amount    *big.Int
	Source    Source
}

// Resolver determines who receives royalties for a sale and how much.
// A dynamically advertised royalty wins over the fallback unless the
// dynamic answer is missing, malformed or out of bounds.
type Resolver interface {
	Resolve(ctx ctx.Ctx, asset domain.AssetRef, referencePrice *big.Int, fallbackRecipient domain.Address, fallbackRate domain.BasisPoints) (*Resolution, error)
}
