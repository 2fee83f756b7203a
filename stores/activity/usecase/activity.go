package usecase

import (
	"time"

	"github.com/google/uuid"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/log"
	"github.com/nifty-xyz/goapi/domain/activity"
)

type ActivityUseCaseCfg struct {
	ActivityRepo activity.Repo
	// Now defaults to time.Now.
	Now func() time.Time
}

type impl struct {
	activityRepo activity.Repo
	now          func() time.Time
}

func New(cfg *ActivityUseCaseCfg) activity.Usecase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		activityRepo: cfg.ActivityRepo,
		now:          now,
	}
}

// Log records the event best effort. Settlement already happened when a
// record is written, so persistence failures are logged, never propagated.
func (im *impl) Log(ctx bCtx.Ctx, r *activity.Record) {
	r.Id = uuid.New().String()
	if r.Time.IsZero() {
		r.Time = im.now()
	}
	if err := im.activityRepo.Insert(ctx, r); err != nil {
		ctx.WithFields(log.Fields{
			"err":  err,
			"type": r.Type,
		}).Error("activityRepo.Insert failed")
	}
}

func (im *impl) FindAll(ctx bCtx.Ctx, opts ...activity.FindAllOptionsFunc) ([]activity.Record, error) {
	res, err := im.activityRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithField("err", err).Error("activityRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}
