package listing

import (
	"math/big"
	"time"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

// Listing is a fixed-price offer of one asset. Ids are 1-based and
// monotonically increasing; id 0 means nonexistent. Listings are never
// deleted: once remaining quantity hits zero or the seller cancels, the
// listing flips inactive and stays queryable.
type Listing struct {
	Id             int64            `json:"id" bson:"id"`
	domain.AssetRef `bson:"inline"`
	Seller         domain.Address     `json:"seller" bson:"seller"`
	Creator        domain.Address     `json:"creator" bson:"creator"`
	UnitPrice      *big.Int           `json:"unitPrice" bson:"unitPrice"`
	RemainingQty   int64              `json:"remainingQuantity" bson:"remainingQuantity"`
	RoyaltyRate    domain.BasisPoints `json:"royaltyRate" bson:"royaltyRate"`
	Active         bool               `json:"active" bson:"active"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`

	// display only, filled on reads
	DisplayPrice string `json:"displayPrice,omitempty" bson:"-"`
}

func (l *Listing) Clone() *Listing {
	c := *l
	c.UnitPrice = new(big.Int).Set(l.UnitPrice)
	return &c
}

// Repo is the listing arena: an append-only store keyed by sequential id
// with secondary indices by seller and by asset.
type Repo interface {
	// Create assigns the next id, records the listing and indexes it.
	Create(ctx ctx.Ctx, l *Listing) (int64, error)

	// FindOne returns a copy; ErrItemNotFound for unknown ids.
	FindOne(ctx ctx.Ctx, id int64) (*Listing, error)

	// Update replaces the stored listing with l (matched by l.Id).
	Update(ctx ctx.Ctx, l *Listing) error

	// FindActive scans active listings by ascending id, starting after
	// cursor, up to limit entries. The returned cursor resumes the scan;
	// 0 means exhausted.
	FindActive(ctx ctx.Ctx, cursor int64, limit int) ([]*Listing, int64, error)

	FindBySeller(ctx ctx.Ctx, seller domain.Address) ([]*Listing, error)
	FindByAsset(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) ([]*Listing, error)
}

type CreateReq struct {
	Asset       domain.AssetRef
	Seller      domain.Address
	Quantity    int64
	UnitPrice   *big.Int
	RoyaltyRate domain.BasisPoints
	// Payment is the attached listing fee; it must match the configured
	// fee exactly and is not refunded on cancellation.
	Payment *big.Int
}

type BuyReq struct {
	ListingId int64
	Buyer     domain.Address
	Quantity  int64
	// Payment is the attached value; anything above quantity*unitPrice is
	// refunded to the buyer after settlement.
	Payment *big.Int
}

type ActivePage struct {
	Items      []*Listing `json:"items"`
	NextCursor int64      `json:"nextCursor"`
}

type Usecase interface {
	Create(ctx ctx.Ctx, req CreateReq) (*Listing, error)
	Buy(ctx ctx.Ctx, req BuyReq) (*Listing, error)
	Cancel(ctx ctx.Ctx, caller domain.Address, id int64) error

	Get(ctx ctx.Ctx, id int64) (*Listing, error)
	GetActive(ctx ctx.Ctx, cursor int64, pageSize int) (*ActivePage, error)
	GetBySeller(ctx ctx.Ctx, seller domain.Address) ([]*Listing, error)
	GetByAsset(ctx ctx.Ctx, collection domain.Address, tokenId domain.TokenId) ([]*Listing, error)
}
