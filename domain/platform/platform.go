package platform

import (
	"math/big"
	"time"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

// Settings are the mutable marketplace parameters both ledgers read at
// operation time. The zero value is not usable; construct via the usecase.
type Settings struct {
	// FeeRate is charged on every sale, capped at domain.MaxPlatformFeeBps.
	FeeRate      domain.BasisPoints `json:"feeRate"`
	FeeRecipient domain.Address     `json:"feeRecipient"`

	// ListingFee is the flat, non-refundable fee attached to createListing.
	ListingFee *big.Int `json:"listingFee"`

	// BidIncrementRate is the minimum percentage a new bid must exceed the
	// current highest bid by.
	BidIncrementRate domain.BasisPoints `json:"bidIncrementRate"`

	AuctionDuration time.Duration `json:"auctionDuration"`

	// RespectDynamicRoyalty toggles live royalty queries against the
	// collection; when off, only the statically configured fallback is used.
	RespectDynamicRoyalty bool `json:"respectDynamicRoyalty"`

	// EscrowAccount is the principal holding escrowed assets and funds.
	EscrowAccount domain.Address `json:"escrowAccount"`
}

type Usecase interface {
	Get(ctx ctx.Ctx) Settings

	UpdateFeeRate(ctx ctx.Ctx, caller domain.Address, rate domain.BasisPoints) error
	UpdateFeeRecipient(ctx ctx.Ctx, caller domain.Address, recipient domain.Address) error
	UpdateListingFee(ctx ctx.Ctx, caller domain.Address, fee *big.Int) error
	UpdateBidIncrementRate(ctx ctx.Ctx, caller domain.Address, rate domain.BasisPoints) error
	SetRespectDynamicRoyalty(ctx ctx.Ctx, caller domain.Address, respect bool) error
}
