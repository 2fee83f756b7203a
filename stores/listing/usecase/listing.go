package usecase

import (
	"math/big"
	"sync"
	"time"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/guard"
	"github.com/nifty-xyz/goapi/base/log"
	"github.com/nifty-xyz/goapi/base/pricefmt"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/activity"
	"github.com/nifty-xyz/goapi/domain/custody"
	"github.com/nifty-xyz/goapi/domain/listing"
	"github.com/nifty-xyz/goapi/domain/payment"
	"github.com/nifty-xyz/goapi/domain/platform"
	"github.com/nifty-xyz/goapi/domain/royalty"
	"github.com/nifty-xyz/goapi/domain/settlement"
)

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	Custody     custody.Adapter
	Royalty     royalty.Resolver
	Platform    platform.Usecase
	Treasury    payment.Treasury
	ActivityUC  activity.Usecase
	// Now is queried lazily at operation time; defaults to time.Now.
	Now func() time.Time
}

type impl struct {
	listingRepo listing.Repo
	custody     custody.Adapter
	royalty     royalty.Resolver
	platform    platform.Usecase
	treasury    payment.Treasury
	activityUC  activity.Usecase
	now         func() time.Time

	// mu serializes every mutating operation on the ledger. The per-operation
	// busy flags below only reject re-entry through a transfer callback while
	// an operation is still executing.
	mu          sync.Mutex
	createGuard guard.Guard
	buyGuard    guard.Guard
	cancelGuard guard.Guard
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		listingRepo: cfg.ListingRepo,
		custody:     cfg.Custody,
		royalty:     cfg.Royalty,
		platform:    cfg.Platform,
		treasury:    cfg.Treasury,
		activityUC:  cfg.ActivityUC,
		now:         now,
	}
}

func (im *impl) Create(ctx bCtx.Ctx, req listing.CreateReq) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.createGuard.Enter(); err != nil {
		return nil, err
	}
	defer im.createGuard.Exit()

	if err := im.validateCreate(ctx, &req); err != nil {
		return nil, err
	}
	req.Asset = req.Asset.LowerCase()
	req.Seller = req.Seller.ToLower()

	settings := im.platform.Get(ctx)
	if req.Payment == nil || req.Payment.Cmp(settings.ListingFee) != 0 {
		ctx.WithFields(log.Fields{
			"required": settings.ListingFee,
			"attached": req.Payment,
		}).Warn("listing fee mismatch")
		return nil, domain.ErrInsufficientFunds
	}

	// the caller-supplied rate is only the fallback; the creator on record
	// is whoever the collection names at listing time
	res, err := im.royalty.Resolve(ctx, req.Asset, req.UnitPrice, req.Seller, req.RoyaltyRate)
	if err != nil {
		ctx.WithField("err", err).Error("royalty.Resolve failed")
		return nil, err
	}

	tx := settlement.Begin()
	feeRecipient := settings.FeeRecipient
	if err := tx.Do(ctx, "listing fee",
		func(c bCtx.Ctx) error {
			if settings.ListingFee.Sign() == 0 {
				return nil
			}
			return im.treasury.Transfer(c, req.Seller, feeRecipient, settings.ListingFee)
		},
		func(c bCtx.Ctx) error {
			if settings.ListingFee.Sign() == 0 {
				return nil
			}
			return im.treasury.Transfer(c, feeRecipient, req.Seller, settings.ListingFee)
		},
	); err != nil {
		return nil, err
	}

	if err := tx.Do(ctx, "escrow",
		func(c bCtx.Ctx) error {
			return im.custody.VerifyAndEscrow(c, req.Asset, req.Seller, req.Quantity)
		},
		func(c bCtx.Ctx) error {
			return im.custody.Release(c, req.Asset, req.Quantity, req.Seller)
		},
	); err != nil {
		tx.Rollback(ctx)
		return nil, err
	}

	l := &listing.Listing{
		AssetRef:     req.Asset,
		Seller:       req.Seller,
		Creator:      res.Recipient,
		UnitPrice:    new(big.Int).Set(req.UnitPrice),
		RemainingQty: req.Quantity,
		RoyaltyRate:  req.RoyaltyRate,
		Active:       true,
		CreatedAt:    im.now(),
	}
	id, err := im.listingRepo.Create(ctx, l)
	if err != nil {
		ctx.WithField("err", err).Error("listingRepo.Create failed")
		tx.Rollback(ctx)
		return nil, err
	}
	l.Id = id
	tx.Commit()

	im.activityUC.Log(ctx, &activity.Record{
		Type:       activity.TypeListingCreated,
		Collection: l.Collection,
		TokenId:    l.TokenId,
		Quantity:   l.RemainingQty,
		Price:      pricefmt.ToDisplay(l.UnitPrice),
		Actor:      l.Seller,
		SourceId:   l.Id,
	})

	l.DisplayPrice = pricefmt.ToDisplay(l.UnitPrice)
	return l, nil
}

func (im *impl) validateCreate(ctx bCtx.Ctx, req *listing.CreateReq) error {
	if req.Asset.Collection.IsEmpty() {
		return domain.ErrInvalidAsset
	}
	if !req.Asset.TokenType.Valid() {
		return domain.ErrUnsupportedAsset
	}
	if req.UnitPrice == nil || req.UnitPrice.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}
	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if req.Asset.TokenType == domain.TokenType721 && req.Quantity != 1 {
		return domain.ErrInvalidQuantity
	}
	if !req.RoyaltyRate.Valid() || req.RoyaltyRate > domain.MaxRoyaltyBps {
		return domain.ErrInvalidRoyalty
	}
	return nil
}

func (im *impl) Buy(ctx bCtx.Ctx, req listing.BuyReq) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.buyGuard.Enter(); err != nil {
		return nil, err
	}
	defer im.buyGuard.Exit()

	l, err := im.listingRepo.FindOne(ctx, req.ListingId)
	if err != nil {
		return nil, err
	}
	if !l.Active {
		return nil, domain.ErrItemSold
	}
	if req.Quantity <= 0 || req.Quantity > l.RemainingQty {
		return nil, domain.ErrInvalidQuantity
	}
	if l.TokenType == domain.TokenType721 && req.Quantity != 1 {
		return nil, domain.ErrInvalidQuantity
	}

	buyer := req.Buyer.ToLower()
	gross := new(big.Int).Mul(l.UnitPrice, big.NewInt(req.Quantity))
	if req.Payment == nil || req.Payment.Cmp(gross) < 0 {
		ctx.WithFields(log.Fields{
			"required": gross,
			"attached": req.Payment,
		}).Warn("buy underpaid")
		return nil, domain.ErrInsufficientFunds
	}

	settings := im.platform.Get(ctx)

	// royalties are resolved fresh against this fill, never replayed from
	// listing time
	res, err := im.royalty.Resolve(ctx, l.AssetRef, gross, l.Creator, l.RoyaltyRate)
	if err != nil {
		ctx.WithField("err", err).Error("royalty.Resolve failed")
		return nil, err
	}
	fees := settlement.Split(gross, settings.FeeRate, res.Amount)

	tx := settlement.Begin()
	fail := func(err error) (*listing.Listing, error) {
		tx.Rollback(ctx)
		return nil, err
	}

	escrow := settings.EscrowAccount
	if err := tx.Do(ctx, "pull payment",
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, buyer, escrow, req.Payment) },
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, escrow, buyer, req.Payment) },
	); err != nil {
		return nil, err
	}

	// a failing royalty recipient never blocks the sale; its share folds
	// into the seller leg instead
	sellerAmount := new(big.Int).Set(fees.Seller)
	if fees.Royalty.Sign() > 0 {
		if err := im.treasury.Transfer(ctx, escrow, res.Recipient, fees.Royalty); err != nil {
			ctx.WithFields(log.Fields{
				"err":       err,
				"recipient": res.Recipient,
				"amount":    fees.Royalty,
			}).Warn("royalty leg failed, redirecting to seller")
			sellerAmount.Add(sellerAmount, fees.Royalty)
		} else {
			recipient := res.Recipient
			amount := fees.Royalty
			tx.Note("royalty", func(c bCtx.Ctx) error {
				return im.treasury.Transfer(c, recipient, escrow, amount)
			})
		}
	}

	if err := tx.Do(ctx, "platform fee",
		func(c bCtx.Ctx) error {
			if fees.Fee.Sign() == 0 {
				return nil
			}
			return im.treasury.Transfer(c, escrow, settings.FeeRecipient, fees.Fee)
		},
		func(c bCtx.Ctx) error {
			if fees.Fee.Sign() == 0 {
				return nil
			}
			return im.treasury.Transfer(c, settings.FeeRecipient, escrow, fees.Fee)
		},
	); err != nil {
		return fail(err)
	}

	if err := tx.Do(ctx, "seller proceeds",
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, escrow, l.Seller, sellerAmount) },
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, l.Seller, escrow, sellerAmount) },
	); err != nil {
		return fail(err)
	}

	if overpay := new(big.Int).Sub(req.Payment, gross); overpay.Sign() > 0 {
		if err := tx.Do(ctx, "refund overpayment",
			func(c bCtx.Ctx) error { return im.treasury.Transfer(c, escrow, buyer, overpay) },
			func(c bCtx.Ctx) error { return im.treasury.Transfer(c, buyer, escrow, overpay) },
		); err != nil {
			return fail(err)
		}
	}

	if err := tx.Do(ctx, "release asset",
		func(c bCtx.Ctx) error { return im.custody.Release(c, l.AssetRef, req.Quantity, buyer) },
		nil,
	); err != nil {
		return fail(err)
	}

	l.RemainingQty -= req.Quantity
	if l.RemainingQty == 0 {
		l.Active = false
	}
	if err := im.listingRepo.Update(ctx, l); err != nil {
		ctx.WithField("err", err).Error("listingRepo.Update failed")
		// the asset is already with the buyer; pull it back with the rest
		if rerr := im.custody.VerifyAndEscrow(ctx, l.AssetRef, buyer, req.Quantity); rerr != nil {
			ctx.WithField("err", rerr).Error("re-escrow after failed update failed")
		}
		tx.Rollback(ctx)
		return nil, err
	}
	tx.Commit()

	im.activityUC.Log(ctx, &activity.Record{
		Type:         activity.TypeListingSold,
		Collection:   l.Collection,
		TokenId:      l.TokenId,
		Quantity:     req.Quantity,
		Price:        pricefmt.ToDisplay(gross),
		Actor:        buyer,
		CounterParty: l.Seller,
		SourceId:     l.Id,
	})

	l.DisplayPrice = pricefmt.ToDisplay(l.UnitPrice)
	return l, nil
}

func (im *impl) Cancel(ctx bCtx.Ctx, caller domain.Address, id int64) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.cancelGuard.Enter(); err != nil {
		return err
	}
	defer im.cancelGuard.Exit()

	l, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if !l.Active {
		return domain.ErrItemSold
	}
	if !l.Seller.Equals(caller) {
		return domain.ErrNotOwner
	}

	remaining := l.RemainingQty
	if err := im.custody.Release(ctx, l.AssetRef, remaining, l.Seller); err != nil {
		ctx.WithField("err", err).Error("custody.Release failed")
		return err
	}

	l.Active = false
	l.RemainingQty = 0
	if err := im.listingRepo.Update(ctx, l); err != nil {
		ctx.WithField("err", err).Error("listingRepo.Update failed")
		if rerr := im.custody.VerifyAndEscrow(ctx, l.AssetRef, l.Seller, remaining); rerr != nil {
			ctx.WithField("err", rerr).Error("re-escrow after failed update failed")
		}
		return err
	}

	im.activityUC.Log(ctx, &activity.Record{
		Type:       activity.TypeListingCancelled,
		Collection: l.Collection,
		TokenId:    l.TokenId,
		Quantity:   remaining,
		Price:      pricefmt.ToDisplay(l.UnitPrice),
		Actor:      l.Seller,
		SourceId:   l.Id,
	})
	return nil
}

func (im *impl) Get(ctx bCtx.Ctx, id int64) (*listing.Listing, error) {
	l, err := im.listingRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	l.DisplayPrice = pricefmt.ToDisplay(l.UnitPrice)
	return l, nil
}

func (im *impl) GetActive(ctx bCtx.Ctx, cursor int64, pageSize int) (*listing.ActivePage, error) {
	items, next, err := im.listingRepo.FindActive(ctx, cursor, pageSize)
	if err != nil {
		ctx.WithField("err", err).Error("listingRepo.FindActive failed")
		return nil, err
	}
	for _, l := range items {
		l.DisplayPrice = pricefmt.ToDisplay(l.UnitPrice)
	}
	return &listing.ActivePage{Items: items, NextCursor: next}, nil
}

func (im *impl) GetBySeller(ctx bCtx.Ctx, seller domain.Address) ([]*listing.Listing, error) {
	items, err := im.listingRepo.FindBySeller(ctx, seller)
	if err != nil {
		ctx.WithField("err", err).Error("listingRepo.FindBySeller failed")
		return nil, err
	}
	for _, l := range items {
		l.DisplayPrice = pricefmt.ToDisplay(l.UnitPrice)
	}
	return items, nil
}

func (im *impl) GetByAsset(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) ([]*listing.Listing, error) {
	items, err := im.listingRepo.FindByAsset(ctx, collection, tokenId)
	if err != nil {
		ctx.WithField("err", err).Error("listingRepo.FindByAsset failed")
		return nil, err
	}
	for _, l := range items {
		l.DisplayPrice = pricefmt.ToDisplay(l.UnitPrice)
	}
	return items, nil
}
