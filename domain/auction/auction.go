package auction

import (
	"fmt"
	"math/big"
	"time"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

type State string

const (
	StateActive    State = "active"
	StateEnded     State = "ended"
	StateCancelled State = "cancelled"
)

// Auction is a time-boxed competitive sale of one escrowed asset (or a
// quantity of it for multi unit assets). Ended and Cancelled are final.
type Auction struct {
	Id              int64 `json:"id" bson:"id"`
	domain.AssetRef `bson:"inline"`
	Quantity        int64          `json:"quantity" bson:"quantity"`
	Seller          domain.Address `json:"seller" bson:"seller"`
	StartingPrice   *big.Int       `json:"startingPrice" bson:"startingPrice"`
	ReservePrice    *big.Int       `json:"reservePrice" bson:"reservePrice"`
	HighestBid      *big.Int       `json:"highestBid" bson:"highestBid"`
	HighestBidder   domain.Address `json:"highestBidder" bson:"highestBidder"`
	EndTime         time.Time      `json:"endTime" bson:"endTime"`
	State           State          `json:"state" bson:"state"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`

	// display only, filled on reads
	DisplayPrice string `json:"displayPrice,omitempty" bson:"-"`
}

func (a *Auction) HasBid() bool {
	return !a.HighestBidder.IsEmpty()
}

func (a *Auction) Clone() *Auction {
	c := *a
	c.StartingPrice = new(big.Int).Set(a.StartingPrice)
	c.ReservePrice = new(big.Int).Set(a.ReservePrice)
	if a.HighestBid != nil {
		c.HighestBid = new(big.Int).Set(a.HighestBid)
	}
	return &c
}

// SlotKey identifies the slot an active auction occupies: at most one
// active auction may exist per (collection, token, quantity) at a time.
func (a *Auction) SlotKey() string {
	return SlotKey(a.AssetRef, a.Quantity)
}

func SlotKey(asset domain.AssetRef, quantity int64) string {
	return fmt.Sprintf("%s:%d", asset.Key(), quantity)
}

// Repo is the auction arena: append-only store keyed by sequential id
// plus an index of the active auction per asset slot.
type Repo interface {
	Create(ctx ctx.Ctx, a *Auction) (int64, error)
	FindOne(ctx ctx.Ctx, id int64) (*Auction, error)
	Update(ctx ctx.Ctx, a *Auction) error

	// FindActiveBySlot returns the active auction occupying the asset's
	// slot, or ErrItemNotFound when the slot is free.
	FindActiveBySlot(ctx ctx.Ctx, asset domain.AssetRef, quantity int64) (*Auction, error)
}

// PendingReturnsRepo is the pull-payment ledger for outbid refunds.
// Credits accumulate; Take zeroes the balance and returns what was owed,
// so the caller can zero before attempting the transfer.
type PendingReturnsRepo interface {
	Credit(ctx ctx.Ctx, principal domain.Address, amount *big.Int) error
	Take(ctx ctx.Ctx, principal domain.Address) (*big.Int, error)
	Get(ctx ctx.Ctx, principal domain.Address) (*big.Int, error)
}

type CreateReq struct {
	Asset         domain.AssetRef
	Quantity      int64
	Seller        domain.Address
	StartingPrice *big.Int
	ReservePrice  *big.Int
}

type BidReq struct {
	AuctionId int64
	Bidder    domain.Address
	// Amount is the attached bid value, pulled into escrow when accepted.
	Amount *big.Int
}

type Usecase interface {
	Create(ctx ctx.Ctx, req CreateReq) (*Auction, error)
	PlaceBid(ctx ctx.Ctx, req BidReq) (*Auction, error)
	End(ctx ctx.Ctx, caller domain.Address, id int64) (*Auction, error)
	Cancel(ctx ctx.Ctx, caller domain.Address, id int64) error
	WithdrawPendingReturns(ctx ctx.Ctx, caller domain.Address) (*big.Int, error)

	Get(ctx ctx.Ctx, id int64) (*Auction, error)
	GetPendingReturns(ctx ctx.Ctx, principal domain.Address) (*big.Int, error)
}
