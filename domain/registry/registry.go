package registry

import (
	"math/big"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

// Capability ids follow the ERC-165 interface-probe convention.
var (
	Capability721         = [4]byte{0x80, 0xac, 0x58, 0xcd}
	Capability1155        = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
	CapabilityRoyaltyInfo = [4]byte{0x2a, 0x55, 0x20, 0x5a}
)

// AssetRegistry is the external token registry the engine custodies assets
// through. The engine never mints or burns; it only verifies ownership and
// approvals and moves tokens between principals.
type AssetRegistry interface {
	// OwnerOf returns the current holder of a one-of-one token.
	OwnerOf(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error)

	// BalanceOf returns owner's balance for a multi unit token id.
	BalanceOf(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error)

	// IsApproved reports whether operator holds a single-token approval. Only
	// meaningful for one-of-one tokens.
	IsApproved(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error)

	// IsApprovedForAll reports whether owner granted operator a blanket approval.
	IsApprovedForAll(ctx ctx.Ctx, collection domain.Address, owner, operator domain.Address) (bool, error)

	// Transfer moves quantity units of the asset from one principal to another.
	Transfer(ctx ctx.Ctx, asset domain.AssetRef, quantity int64, from, to domain.Address) error

	// SupportsCapability probes the collection for an advertised capability.
	SupportsCapability(ctx ctx.Ctx, collection domain.Address, capability [4]byte) (bool, error)

	// RoyaltyInfo queries the collection's registered royalty for a sale at
	// salePrice. Collections that do not advertise CapabilityRoyaltyInfo may
	// fail arbitrarily; callers treat any failure as capability absent.
	RoyaltyInfo(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId, salePrice *big.Int) (domain.Address, *big.Int, error)
}
