package settlement

import (
	"github.com/nifty-xyz/goapi/base/ctx"
)

// Tx sequences the value- and asset-moving legs of one settlement so the
// whole operation either fully completes or is fully compensated. Each leg
// registers an undo when it succeeds; if a later leg fails, Rollback runs
// the undos in reverse order.
//
// Compensation failures cannot be recovered from here; they are logged and
// the original error still propagates.
type Tx struct {
	undos []undo
}

type undo struct {
	name string
	fn   func(ctx.Ctx) error
}

func Begin() *Tx {
	return &Tx{}
}

// Do runs one leg. undoFn may be nil for legs that need no compensation.
func (t *Tx) Do(c ctx.Ctx, name string, run func(ctx.Ctx) error, undoFn func(ctx.Ctx) error) error {
	if err := run(c); err != nil {
		c.WithField("err", err).WithField("leg", name).Error("settlement leg failed")
		return err
	}
	if undoFn != nil {
		t.undos = append(t.undos, undo{name, undoFn})
	}
	return nil
}

// Note registers a compensation for work already performed outside Do,
// e.g. a leg whose failure is tolerated instead of aborting.
func (t *Tx) Note(name string, undoFn func(ctx.Ctx) error) {
	t.undos = append(t.undos, undo{name, undoFn})
}

// Rollback compensates every completed leg in reverse order.
func (t *Tx) Rollback(c ctx.Ctx) {
	for i := len(t.undos) - 1; i >= 0; i-- {
		u := t.undos[i]
		if err := u.fn(c); err != nil {
			c.WithField("err", err).WithField("leg", u.name).Error("settlement rollback failed")
		}
	}
	t.undos = nil
}

// Commit discards the registered undos once the operation is final.
func (t *Tx) Commit() {
	t.undos = nil
}
