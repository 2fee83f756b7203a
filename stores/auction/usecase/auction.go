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
	"github.com/nifty-xyz/goapi/domain/auction"
	"github.com/nifty-xyz/goapi/domain/custody"
	"github.com/nifty-xyz/goapi/domain/payment"
	"github.com/nifty-xyz/goapi/domain/platform"
	"github.com/nifty-xyz/goapi/domain/royalty"
	"github.com/nifty-xyz/goapi/domain/settlement"
)

type AuctionUseCaseCfg struct {
	AuctionRepo        auction.Repo
	PendingReturnsRepo auction.PendingReturnsRepo
	Custody            custody.Adapter
	Royalty            royalty.Resolver
	Platform           platform.Usecase
	Treasury           payment.Treasury
	ActivityUC         activity.Usecase
	// Now is queried lazily at operation time; defaults to time.Now.
	Now func() time.Time
}

type impl struct {
	auctionRepo        auction.Repo
	pendingReturnsRepo auction.PendingReturnsRepo
	custody            custody.Adapter
	royalty            royalty.Resolver
	platform           platform.Usecase
	treasury           payment.Treasury
	activityUC         activity.Usecase
	now                func() time.Time

	// mu serializes every mutating operation on the ledger. The per-operation
	// busy flags below only reject re-entry through a transfer callback while
	// an operation is still executing.
	mu            sync.Mutex
	createGuard   guard.Guard
	bidGuard      guard.Guard
	endGuard      guard.Guard
	cancelGuard   guard.Guard
	withdrawGuard guard.Guard
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &impl{
		auctionRepo:        cfg.AuctionRepo,
		pendingReturnsRepo: cfg.PendingReturnsRepo,
		custody:            cfg.Custody,
		royalty:            cfg.Royalty,
		platform:           cfg.Platform,
		treasury:           cfg.Treasury,
		activityUC:         cfg.ActivityUC,
		now:                now,
	}
}

func (im *impl) Create(ctx bCtx.Ctx, req auction.CreateReq) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.createGuard.Enter(); err != nil {
		return nil, err
	}
	defer im.createGuard.Exit()

	if err := im.validateCreate(&req); err != nil {
		return nil, err
	}
	req.Asset = req.Asset.LowerCase()
	req.Seller = req.Seller.ToLower()

	if _, err := im.auctionRepo.FindActiveBySlot(ctx, req.Asset, req.Quantity); err == nil {
		return nil, domain.ErrActiveAuctionExists
	} else if err != domain.ErrItemNotFound {
		ctx.WithField("err", err).Error("auctionRepo.FindActiveBySlot failed")
		return nil, err
	}

	if err := im.custody.VerifyAndEscrow(ctx, req.Asset, req.Seller, req.Quantity); err != nil {
		return nil, err
	}

	settings := im.platform.Get(ctx)
	au := &auction.Auction{
		AssetRef:      req.Asset,
		Quantity:      req.Quantity,
		Seller:        req.Seller,
		StartingPrice: new(big.Int).Set(req.StartingPrice),
		ReservePrice:  new(big.Int).Set(req.ReservePrice),
		EndTime:       im.now().Add(settings.AuctionDuration),
		State:         auction.StateActive,
		CreatedAt:     im.now(),
	}
	id, err := im.auctionRepo.Create(ctx, au)
	if err != nil {
		ctx.WithField("err", err).Error("auctionRepo.Create failed")
		if rerr := im.custody.Release(ctx, req.Asset, req.Quantity, req.Seller); rerr != nil {
			ctx.WithField("err", rerr).Error("escrow release after failed create failed")
		}
		return nil, err
	}
	au.Id = id

	im.activityUC.Log(ctx, &activity.Record{
		Type:       activity.TypeAuctionCreated,
		Collection: au.Collection,
		TokenId:    au.TokenId,
		Quantity:   au.Quantity,
		Price:      pricefmt.ToDisplay(au.StartingPrice),
		Actor:      au.Seller,
		SourceId:   au.Id,
	})

	au.DisplayPrice = pricefmt.ToDisplay(au.StartingPrice)
	return au, nil
}

func (im *impl) validateCreate(req *auction.CreateReq) error {
	if req.Asset.Collection.IsEmpty() {
		return domain.ErrInvalidAsset
	}
	if !req.Asset.TokenType.Valid() {
		return domain.ErrUnsupportedAsset
	}
	if req.Seller.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if req.Asset.TokenType == domain.TokenType721 && req.Quantity != 1 {
		return domain.ErrInvalidQuantity
	}
	if req.StartingPrice == nil || req.StartingPrice.Sign() <= 0 {
		return domain.ErrInvalidPrice
	}
	if req.ReservePrice == nil || req.ReservePrice.Cmp(req.StartingPrice) < 0 {
		return domain.ErrReservePriceTooLow
	}
	return nil
}

func (im *impl) PlaceBid(ctx bCtx.Ctx, req auction.BidReq) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.bidGuard.Enter(); err != nil {
		return nil, err
	}
	defer im.bidGuard.Exit()

	au, err := im.auctionRepo.FindOne(ctx, req.AuctionId)
	if err != nil {
		return nil, err
	}
	if au.State != auction.StateActive {
		return nil, domain.ErrAuctionNotActive
	}
	if !im.now().Before(au.EndTime) {
		return nil, domain.ErrAuctionEnded
	}

	bidder := req.Bidder.ToLower()
	if au.Seller.Equals(bidder) {
		return nil, domain.ErrCannotBidOnOwnAuction
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	if !au.HasBid() {
		if req.Amount.Cmp(au.StartingPrice) < 0 {
			return nil, domain.ErrBidBelowStartingPrice
		}
	} else {
		min := new(big.Int).Add(au.HighestBid, im.platform.Get(ctx).BidIncrementRate.Of(au.HighestBid))
		if min.Cmp(au.HighestBid) == 0 {
			min.Add(min, big.NewInt(1))
		}
		if req.Amount.Cmp(min) < 0 {
			ctx.WithFields(log.Fields{
				"bid":     req.Amount,
				"minimum": min,
			}).Debug("bid below minimum increment")
			return nil, domain.ErrBidTooLow
		}
	}

	prevBidder := au.HighestBidder
	prevBid := au.HighestBid

	settings := im.platform.Get(ctx)
	tx := settlement.Begin()
	if err := tx.Do(ctx, "pull bid",
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, bidder, settings.EscrowAccount, req.Amount) },
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, settings.EscrowAccount, bidder, req.Amount) },
	); err != nil {
		return nil, err
	}

	au.HighestBid = new(big.Int).Set(req.Amount)
	au.HighestBidder = bidder
	if err := im.auctionRepo.Update(ctx, au); err != nil {
		ctx.WithField("err", err).Error("auctionRepo.Update failed")
		tx.Rollback(ctx)
		return nil, err
	}

	// the outbid amount stays in escrow; only the claim moves to the
	// pull-payment ledger
	if prevBid != nil && prevBid.Sign() > 0 {
		if err := im.pendingReturnsRepo.Credit(ctx, prevBidder, prevBid); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"bidder":  prevBidder,
				"amount":  prevBid,
				"auction": au.Id,
			}).Error("pendingReturnsRepo.Credit failed")
		}
	}
	tx.Commit()

	im.activityUC.Log(ctx, &activity.Record{
		Type:         activity.TypeAuctionBid,
		Collection:   au.Collection,
		TokenId:      au.TokenId,
		Quantity:     au.Quantity,
		Price:        pricefmt.ToDisplay(au.HighestBid),
		Actor:        bidder,
		CounterParty: au.Seller,
		SourceId:     au.Id,
	})

	au.DisplayPrice = pricefmt.ToDisplay(au.HighestBid)
	return au, nil
}

func (im *impl) End(ctx bCtx.Ctx, caller domain.Address, id int64) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.endGuard.Enter(); err != nil {
		return nil, err
	}
	defer im.endGuard.Exit()

	au, err := im.auctionRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	switch au.State {
	case auction.StateActive:
	case auction.StateEnded:
		return nil, domain.ErrAuctionEnded
	default:
		return nil, domain.ErrAuctionNotActive
	}

	// before the deadline only the seller may settle
	if im.now().Before(au.EndTime) && !au.Seller.Equals(caller) {
		return nil, domain.ErrAuctionStillActive
	}

	if !au.HasBid() || au.HighestBid.Cmp(au.ReservePrice) < 0 {
		return im.endWithoutSale(ctx, au)
	}
	return im.endWithSale(ctx, au)
}

// endWithoutSale covers both the no-bid case and a highest bid under the
// reserve: the asset goes back to the seller and the bid, if any, becomes
// a pending return for the bidder.
func (im *impl) endWithoutSale(ctx bCtx.Ctx, au *auction.Auction) (*auction.Auction, error) {
	if err := im.custody.Release(ctx, au.AssetRef, au.Quantity, au.Seller); err != nil {
		return nil, err
	}

	au.State = auction.StateEnded
	if err := im.auctionRepo.Update(ctx, au); err != nil {
		ctx.WithField("err", err).Error("auctionRepo.Update failed")
		if rerr := im.custody.VerifyAndEscrow(ctx, au.AssetRef, au.Seller, au.Quantity); rerr != nil {
			ctx.WithField("err", rerr).Error("re-escrow after failed update failed")
		}
		return nil, err
	}

	if au.HasBid() {
		if err := im.pendingReturnsRepo.Credit(ctx, au.HighestBidder, au.HighestBid); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"bidder":  au.HighestBidder,
				"auction": au.Id,
			}).Error("pendingReturnsRepo.Credit failed")
		}
	}

	im.activityUC.Log(ctx, &activity.Record{
		Type:       activity.TypeAuctionNoSale,
		Collection: au.Collection,
		TokenId:    au.TokenId,
		Quantity:   au.Quantity,
		Actor:      au.Seller,
		SourceId:   au.Id,
	})
	return au, nil
}

func (im *impl) endWithSale(ctx bCtx.Ctx, au *auction.Auction) (*auction.Auction, error) {
	settings := im.platform.Get(ctx)

	// auctions carry no listing-time fallback; royalties apply only when
	// the collection advertises them at settlement time
	res, err := im.royalty.Resolve(ctx, au.AssetRef, au.HighestBid, au.Seller, 0)
	if err != nil {
		ctx.WithField("err", err).Error("royalty.Resolve failed")
		return nil, err
	}
	fees := settlement.Split(au.HighestBid, settings.FeeRate, res.Amount)

	tx := settlement.Begin()
	fail := func(err error) (*auction.Auction, error) {
		tx.Rollback(ctx)
		return nil, err
	}
	escrow := settings.EscrowAccount

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
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, escrow, au.Seller, sellerAmount) },
		func(c bCtx.Ctx) error { return im.treasury.Transfer(c, au.Seller, escrow, sellerAmount) },
	); err != nil {
		return fail(err)
	}

	winner := au.HighestBidder
	if err := tx.Do(ctx, "release asset",
		func(c bCtx.Ctx) error { return im.custody.Release(c, au.AssetRef, au.Quantity, winner) },
		nil,
	); err != nil {
		return fail(err)
	}

	au.State = auction.StateEnded
	if err := im.auctionRepo.Update(ctx, au); err != nil {
		ctx.WithField("err", err).Error("auctionRepo.Update failed")
		if rerr := im.custody.VerifyAndEscrow(ctx, au.AssetRef, winner, au.Quantity); rerr != nil {
			ctx.WithField("err", rerr).Error("re-escrow after failed update failed")
		}
		tx.Rollback(ctx)
		return nil, err
	}
	tx.Commit()

	im.activityUC.Log(ctx, &activity.Record{
		Type:         activity.TypeAuctionSold,
		Collection:   au.Collection,
		TokenId:      au.TokenId,
		Quantity:     au.Quantity,
		Price:        pricefmt.ToDisplay(au.HighestBid),
		Actor:        winner,
		CounterParty: au.Seller,
		SourceId:     au.Id,
	})

	au.DisplayPrice = pricefmt.ToDisplay(au.HighestBid)
	return au, nil
}

func (im *impl) Cancel(ctx bCtx.Ctx, caller domain.Address, id int64) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.cancelGuard.Enter(); err != nil {
		return err
	}
	defer im.cancelGuard.Exit()

	au, err := im.auctionRepo.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if au.State != auction.StateActive {
		return domain.ErrAuctionNotActive
	}
	if !au.Seller.Equals(caller) {
		return domain.ErrNotOwner
	}
	if au.HasBid() {
		return domain.ErrAuctionHasBids
	}

	if err := im.custody.Release(ctx, au.AssetRef, au.Quantity, au.Seller); err != nil {
		return err
	}

	au.State = auction.StateCancelled
	if err := im.auctionRepo.Update(ctx, au); err != nil {
		ctx.WithField("err", err).Error("auctionRepo.Update failed")
		if rerr := im.custody.VerifyAndEscrow(ctx, au.AssetRef, au.Seller, au.Quantity); rerr != nil {
			ctx.WithField("err", rerr).Error("re-escrow after failed update failed")
		}
		return err
	}

	im.activityUC.Log(ctx, &activity.Record{
		Type:       activity.TypeAuctionCancelled,
		Collection: au.Collection,
		TokenId:    au.TokenId,
		Quantity:   au.Quantity,
		Actor:      au.Seller,
		SourceId:   au.Id,
	})
	return nil
}

func (im *impl) WithdrawPendingReturns(ctx bCtx.Ctx, caller domain.Address) (*big.Int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if err := im.withdrawGuard.Enter(); err != nil {
		return nil, err
	}
	defer im.withdrawGuard.Exit()

	caller = caller.ToLower()
	// zero the claim before moving value so a reentering caller finds
	// nothing left to withdraw
	owed, err := im.pendingReturnsRepo.Take(ctx, caller)
	if err != nil {
		return nil, err
	}

	escrow := im.platform.Get(ctx).EscrowAccount
	if err := im.treasury.Transfer(ctx, escrow, caller, owed); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"caller": caller,
			"amount": owed,
		}).Error("pending returns payout failed")
		if rerr := im.pendingReturnsRepo.Credit(ctx, caller, owed); rerr != nil {
			ctx.WithField("err", rerr).Error("pending returns re-credit failed")
		}
		return nil, err
	}

	im.activityUC.Log(ctx, &activity.Record{
		Type:  activity.TypeReturnsWithdrawn,
		Price: pricefmt.ToDisplay(owed),
		Actor: caller,
	})
	return owed, nil
}

func (im *impl) Get(ctx bCtx.Ctx, id int64) (*auction.Auction, error) {
	au, err := im.auctionRepo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if au.HasBid() {
		au.DisplayPrice = pricefmt.ToDisplay(au.HighestBid)
	} else {
		au.DisplayPrice = pricefmt.ToDisplay(au.StartingPrice)
	}
	return au, nil
}

func (im *impl) GetPendingReturns(ctx bCtx.Ctx, principal domain.Address) (*big.Int, error) {
	return im.pendingReturnsRepo.Get(ctx, principal)
}
