package guard

import (
	"sync/atomic"

	"github.com/nifty-xyz/goapi/domain"
)

// Guard is the busy flag wrapped around every value-moving operation.
// Enter fails instead of blocking, so an operation re-entered through a
// transfer callback while still executing is rejected rather than
// deadlocked. Exit must run on every path out, including failures.
type Guard struct {
	busy int32
}

func (g *Guard) Enter() error {
	if !atomic.CompareAndSwapInt32(&g.busy, 0, 1) {
		return domain.ErrReentrantCall
	}
	return nil
}

func (g *Guard) Exit() {
	atomic.StoreInt32(&g.busy, 0)
}
