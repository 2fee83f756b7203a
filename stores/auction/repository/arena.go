package repository

import (
	"sync"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/auction"
)

// arena is the append-only auction store: slot i holds auction id i+1.
// The slot index tracks which asset slot each active auction occupies and
// is maintained on every state transition.
type arena struct {
	mu           sync.RWMutex
	items        []*auction.Auction
	activeBySlot map[string]int64
}

func NewArena() auction.Repo {
	return &arena{
		activeBySlot: make(map[string]int64),
	}
}

func (a *arena) Create(ctx bCtx.Ctx, au *auction.Auction) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored := au.Clone()
	stored.Id = int64(len(a.items)) + 1
	stored.Seller = stored.Seller.ToLower()
	stored.HighestBidder = stored.HighestBidder.ToLower()
	stored.AssetRef = stored.AssetRef.LowerCase()

	if stored.State == auction.StateActive {
		if _, occupied := a.activeBySlot[stored.SlotKey()]; occupied {
			return 0, domain.ErrActiveAuctionExists
		}
		a.activeBySlot[stored.SlotKey()] = stored.Id
	}
	a.items = append(a.items, stored)

	au.Id = stored.Id
	return stored.Id, nil
}

func (a *arena) FindOne(ctx bCtx.Ctx, id int64) (*auction.Auction, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	au, err := a.get(id)
	if err != nil {
		return nil, err
	}
	return au.Clone(), nil
}

func (a *arena) Update(ctx bCtx.Ctx, au *auction.Auction) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev, err := a.get(au.Id)
	if err != nil {
		return err
	}

	stored := au.Clone()
	if prev.State == auction.StateActive && stored.State != auction.StateActive {
		delete(a.activeBySlot, prev.SlotKey())
	}
	a.items[au.Id-1] = stored
	return nil
}

func (a *arena) FindActiveBySlot(ctx bCtx.Ctx, asset domain.AssetRef, quantity int64) (*auction.Auction, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	id, ok := a.activeBySlot[auction.SlotKey(asset.LowerCase(), quantity)]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return a.items[id-1].Clone(), nil
}

func (a *arena) get(id int64) (*auction.Auction, error) {
	if id < 1 || id > int64(len(a.items)) {
		return nil, domain.ErrItemNotFound
	}
	return a.items[id-1], nil
}
