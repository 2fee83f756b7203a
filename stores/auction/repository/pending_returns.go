package repository

import (
	"math/big"
	"sync"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/auction"
)

// pendingReturns is the pull-payment ledger. Outbid refunds are credited
// here instead of being pushed back, so an uncooperative bidder can never
// wedge the auction that outbid them.
type pendingReturns struct {
	mu   sync.Mutex
	owed map[domain.Address]*big.Int
}

func NewPendingReturns() auction.PendingReturnsRepo {
	return &pendingReturns{owed: make(map[domain.Address]*big.Int)}
}

func (p *pendingReturns) Credit(ctx bCtx.Ctx, principal domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	principal = principal.ToLower()
	if owed, ok := p.owed[principal]; ok {
		owed.Add(owed, amount)
	} else {
		p.owed[principal] = new(big.Int).Set(amount)
	}
	return nil
}

// Take zeroes the balance before handing it back, so a transfer attempted
// afterwards can never be replayed into a double withdrawal.
func (p *pendingReturns) Take(ctx bCtx.Ctx, principal domain.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	principal = principal.ToLower()
	owed, ok := p.owed[principal]
	if !ok || owed.Sign() == 0 {
		return nil, domain.ErrNoPendingReturns
	}
	delete(p.owed, principal)
	return owed, nil
}

func (p *pendingReturns) Get(ctx bCtx.Ctx, principal domain.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if owed, ok := p.owed[principal.ToLower()]; ok {
		return new(big.Int).Set(owed), nil
	}
	return new(big.Int), nil
}
