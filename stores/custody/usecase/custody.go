package usecase

import (
	"golang.org/x/xerrors"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/custody"
	"github.com/nifty-xyz/goapi/domain/registry"
)

type impl struct {
	registry      registry.AssetRegistry
	escrowAccount domain.Address
}

func New(reg registry.AssetRegistry, escrowAccount domain.Address) custody.Adapter {
	return &impl{
		registry:      reg,
		escrowAccount: escrowAccount.ToLower(),
	}
}

func (im *impl) VerifyAndEscrow(ctx bCtx.Ctx, asset domain.AssetRef, from domain.Address, quantity int64) error {
	switch asset.TokenType {
	case domain.TokenType721:
		if quantity != 1 {
			return domain.ErrInvalidQuantity
		}
		owner, err := im.registry.OwnerOf(ctx, asset.Collection, asset.TokenId)
		if err != nil {
			ctx.WithField("err", err).Error("registry.OwnerOf failed")
			return err
		}
		if !owner.Equals(from) {
			return domain.ErrNotOwner
		}
		approved, err := im.registry.IsApprovedForAll(ctx, asset.Collection, from, im.escrowAccount)
		if err != nil {
			ctx.WithField("err", err).Error("registry.IsApprovedForAll failed")
			return err
		}
		if !approved {
			// fall back to the single-token approval
			approved, err = im.registry.IsApproved(ctx, asset.Collection, asset.TokenId, im.escrowAccount)
			if err != nil {
				ctx.WithField("err", err).Error("registry.IsApproved failed")
				return err
			}
		}
		if !approved {
			return domain.ErrNotApproved
		}

	case domain.TokenType1155:
		if quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		balance, err := im.registry.BalanceOf(ctx, asset.Collection, asset.TokenId, from)
		if err != nil {
			ctx.WithField("err", err).Error("registry.BalanceOf failed")
			return err
		}
		if balance.Int64() < quantity {
			return domain.ErrNotOwner
		}
		// only blanket approvals exist for multi unit tokens
		approved, err := im.registry.IsApprovedForAll(ctx, asset.Collection, from, im.escrowAccount)
		if err != nil {
			ctx.WithField("err", err).Error("registry.IsApprovedForAll failed")
			return err
		}
		if !approved {
			return domain.ErrNotApproved
		}

	default:
		return domain.ErrUnsupportedAsset
	}

	if err := im.registry.Transfer(ctx, asset, quantity, from, im.escrowAccount); err != nil {
		ctx.WithField("err", err).Error("registry.Transfer into escrow failed")
		return xerrors.Errorf("escrow %s: %w", asset.Key(), domain.ErrTransferFailed)
	}
	return nil
}

func (im *impl) Release(ctx bCtx.Ctx, asset domain.AssetRef, quantity int64, to domain.Address) error {
	if err := im.registry.Transfer(ctx, asset, quantity, im.escrowAccount, to); err != nil {
		ctx.WithField("err", err).Error("registry.Transfer out of escrow failed")
		return xerrors.Errorf("release %s: %w", asset.Key(), domain.ErrTransferFailed)
	}
	return nil
}
