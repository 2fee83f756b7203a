package repository

import (
	"fmt"
	"sync"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/listing"
)

// arena is the append-only listing store: a growable slice where slot i
// holds listing id i+1, plus insertion-ordered secondary indices. Entries
// are never removed, so historical lookups by seller and asset keep
// working after a listing deactivates.
type arena struct {
	mu       sync.RWMutex
	items    []*listing.Listing
	bySeller map[domain.Address][]int64
	byAsset  map[string][]int64
}

func NewArena() listing.Repo {
	return &arena{
		bySeller: make(map[domain.Address][]int64),
		byAsset:  make(map[string][]int64),
	}
}

func (a *arena) Create(ctx bCtx.Ctx, l *listing.Listing) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored := l.Clone()
	stored.Id = int64(len(a.items)) + 1
	stored.Seller = stored.Seller.ToLower()
	stored.Creator = stored.Creator.ToLower()
	stored.AssetRef = stored.AssetRef.LowerCase()

	a.items = append(a.items, stored)
	a.bySeller[stored.Seller] = append(a.bySeller[stored.Seller], stored.Id)
	assetKey := a.assetKey(stored.Collection, stored.TokenId)
	a.byAsset[assetKey] = append(a.byAsset[assetKey], stored.Id)

	l.Id = stored.Id
	return stored.Id, nil
}

func (a *arena) FindOne(ctx bCtx.Ctx, id int64) (*listing.Listing, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	l, err := a.get(id)
	if err != nil {
		return nil, err
	}
	return l.Clone(), nil
}

func (a *arena) Update(ctx bCtx.Ctx, l *listing.Listing) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.get(l.Id); err != nil {
		return err
	}
	a.items[l.Id-1] = l.Clone()
	return nil
}

func (a *arena) FindActive(ctx bCtx.Ctx, cursor int64, limit int) ([]*listing.Listing, int64, error) {
	if cursor < 0 || limit <= 0 {
		return nil, 0, domain.ErrBadParamInput
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	res := []*listing.Listing{}
	next := int64(0)
	for i := cursor; i < int64(len(a.items)); i++ {
		l := a.items[i]
		if !l.Active {
			continue
		}
		if len(res) == limit {
			// more active entries remain; resume after the last returned id
			next = res[limit-1].Id
			break
		}
		res = append(res, l.Clone())
	}
	return res, next, nil
}

func (a *arena) FindBySeller(ctx bCtx.Ctx, seller domain.Address) ([]*listing.Listing, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.collect(a.bySeller[seller.ToLower()]), nil
}

func (a *arena) FindByAsset(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) ([]*listing.Listing, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.collect(a.byAsset[a.assetKey(collection, tokenId)]), nil
}

func (a *arena) get(id int64) (*listing.Listing, error) {
	if id < 1 || id > int64(len(a.items)) {
		return nil, domain.ErrItemNotFound
	}
	return a.items[id-1], nil
}

func (a *arena) collect(ids []int64) []*listing.Listing {
	res := make([]*listing.Listing, 0, len(ids))
	for _, id := range ids {
		res = append(res, a.items[id-1].Clone())
	}
	return res
}

func (a *arena) assetKey(collection domain.Address, tokenId domain.TokenId) string {
	return fmt.Sprintf("%s:%s", collection.ToLowerStr(), tokenId)
}
