package activity

import (
	"time"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

type Type string

const (
	TypeListingCreated   Type = "listing_created"
	TypeListingSold      Type = "listing_sold"
	TypeListingCancelled Type = "listing_cancelled"
	TypeAuctionCreated   Type = "auction_created"
	TypeAuctionBid       Type = "auction_bid"
	TypeAuctionSold      Type = "auction_sold"
	TypeAuctionNoSale    Type = "auction_no_sale"
	TypeAuctionCancelled Type = "auction_cancelled"
	TypeReturnsWithdrawn Type = "returns_withdrawn"
)

// Record is one append-only marketplace event: listing/auction creation,
// fills, cancellations and settlement outcomes.
type Record struct {
	Id         string         `json:"id" bson:"id"`
	Type       Type           `json:"type" bson:"type"`
	Collection domain.Address `json:"collection" bson:"collection"`
	TokenId    domain.TokenId `json:"tokenId" bson:"tokenId"`
	Quantity   int64          `json:"quantity" bson:"quantity"`
	// Price is a decimal string; mongo cannot hold big integers natively.
	Price        string         `json:"price" bson:"price"`
	Actor        domain.Address `json:"actor" bson:"actor"`
	CounterParty domain.Address `json:"counterParty,omitempty" bson:"counterParty,omitempty"`
	// SourceId is the originating listing or auction id.
	SourceId int64     `json:"sourceId" bson:"sourceId"`
	Time     time.Time `json:"time" bson:"time"`
}

type FindAllOptions struct {
	Collection *domain.Address
	TokenId    *domain.TokenId
	Actor      *domain.Address
	Type       *Type
	Offset     *int32
	Limit      *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithAsset(collection domain.Address, tokenId domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		collection = collection.ToLower()
		options.Collection = &collection
		options.TokenId = &tokenId
		return nil
	}
}

func WithCollection(collection domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		collection = collection.ToLower()
		options.Collection = &collection
		return nil
	}
}

func WithActor(actor domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		actor = actor.ToLower()
		options.Actor = &actor
		return nil
	}
}

func WithType(t Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	Insert(ctx ctx.Ctx, r *Record) error
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]Record, error)
}

type Usecase interface {
	Log(ctx ctx.Ctx, r *Record)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]Record, error)
}
