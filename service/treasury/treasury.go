package treasury

import (
	"math/big"
	"sync"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/payment"
)

// impl is an in-memory treasury keyed by principal. It backs local mode
// and tests; production deployments swap in a payment rail behind the
// same interface.
type impl struct {
	mu       sync.Mutex
	balances map[domain.Address]*big.Int
}

func New() payment.Treasury {
	return &impl{balances: make(map[domain.Address]*big.Int)}
}

// NewWithBalances seeds initial balances, mostly for tests.
func NewWithBalances(seed map[domain.Address]*big.Int) payment.Treasury {
	t := &impl{balances: make(map[domain.Address]*big.Int)}
	for addr, amount := range seed {
		t.balances[addr.ToLower()] = new(big.Int).Set(amount)
	}
	return t
}

func (t *impl) Transfer(ctx bCtx.Ctx, from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidPrice
	}
	if amount.Sign() == 0 {
		return nil
	}
	if to.IsEmpty() {
		return domain.ErrTransferFailed
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	src := t.balance(from)
	if src.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	src.Sub(src, amount)
	t.balance(to).Add(t.balance(to), amount)
	return nil
}

func (t *impl) BalanceOf(ctx bCtx.Ctx, owner domain.Address) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Set(t.balance(owner)), nil
}

func (t *impl) balance(owner domain.Address) *big.Int {
	owner = owner.ToLower()
	if b, ok := t.balances[owner]; ok {
		return b
	}
	b := new(big.Int)
	t.balances[owner] = b
	return b
}
