package usecase

import (
	"math/big"
	"sync"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/platform"
)

type PlatformCfg struct {
	Admin   domain.Address
	Initial platform.Settings
}

type impl struct {
	admin domain.Address

	mu       sync.RWMutex
	settings platform.Settings
}

func New(cfg *PlatformCfg) platform.Usecase {
	settings := cfg.Initial
	if settings.ListingFee == nil {
		settings.ListingFee = new(big.Int)
	}
	settings.FeeRecipient = settings.FeeRecipient.ToLower()
	settings.EscrowAccount = settings.EscrowAccount.ToLower()
	return &impl{
		admin:    cfg.Admin.ToLower(),
		settings: settings,
	}
}

func (im *impl) Get(ctx bCtx.Ctx) platform.Settings {
	im.mu.RLock()
	defer im.mu.RUnlock()
	s := im.settings
	s.ListingFee = new(big.Int).Set(im.settings.ListingFee)
	return s
}

func (im *impl) UpdateFeeRate(ctx bCtx.Ctx, caller domain.Address, rate domain.BasisPoints) error {
	if err := im.authorize(caller); err != nil {
		return err
	}
	if rate < 0 || rate > domain.MaxPlatformFeeBps {
		return domain.ErrBadParamInput
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.settings.FeeRate = rate
	return nil
}

func (im *impl) UpdateFeeRecipient(ctx bCtx.Ctx, caller domain.Address, recipient domain.Address) error {
	if err := im.authorize(caller); err != nil {
		return err
	}
	if recipient.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.settings.FeeRecipient = recipient.ToLower()
	return nil
}

func (im *impl) UpdateListingFee(ctx bCtx.Ctx, caller domain.Address, fee *big.Int) error {
	if err := im.authorize(caller); err != nil {
		return err
	}
	if fee == nil || fee.Sign() < 0 {
		return domain.ErrBadParamInput
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.settings.ListingFee = new(big.Int).Set(fee)
	return nil
}

func (im *impl) UpdateBidIncrementRate(ctx bCtx.Ctx, caller domain.Address, rate domain.BasisPoints) error {
	if err := im.authorize(caller); err != nil {
		return err
	}
	if !rate.Valid() {
		return domain.ErrBadParamInput
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.settings.BidIncrementRate = rate
	return nil
}

func (im *impl) SetRespectDynamicRoyalty(ctx bCtx.Ctx, caller domain.Address, respect bool) error {
	if err := im.authorize(caller); err != nil {
		return err
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.settings.RespectDynamicRoyalty = respect
	return nil
}

func (im *impl) authorize(caller domain.Address) error {
	if !caller.Equals(im.admin) {
		return domain.ErrUnauthorized
	}
	return nil
}
