package usecase

import (
	"math/big"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/platform"
	"github.com/nifty-xyz/goapi/domain/registry"
	"github.com/nifty-xyz/goapi/domain/royalty"
)

type ResolverCfg struct {
	Registry registry.AssetRegistry
	Platform platform.Usecase
}

type impl struct {
	registry registry.AssetRegistry
	platform platform.Usecase
}

func NewResolver(cfg *ResolverCfg) royalty.Resolver {
	return &impl{
		registry: cfg.Registry,
		platform: cfg.Platform,
	}
}

// Resolve prefers the collection's live royalty answer over the static
// fallback. Any failure along the dynamic path, and any dynamic answer
// that is malformed or out of bounds, silently degrades to the fallback;
// the lower-level error never propagates.
func (im *impl) Resolve(ctx bCtx.Ctx, asset domain.AssetRef, referencePrice *big.Int, fallbackRecipient domain.Address, fallbackRate domain.BasisPoints) (*royalty.Resolution, error) {
	if referencePrice == nil || referencePrice.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if !fallbackRate.Valid() || fallbackRate > domain.MaxRoyaltyBps {
		return nil, domain.ErrInvalidRoyalty
	}

	static := &royalty.Resolution{
		Recipient: fallbackRecipient.ToLower(),
		Amount:    fallbackRate.Of(referencePrice),
		Source:    royalty.SourceStatic,
	}

	if !im.platform.Get(ctx).RespectDynamicRoyalty {
		return static, nil
	}

	supported, err := im.registry.SupportsCapability(ctx, asset.Collection, registry.CapabilityRoyaltyInfo)
	if err != nil || !supported {
		if err != nil {
			ctx.WithField("err", err).WithField("collection", asset.Collection).Debug("capability probe failed, using static royalty")
		}
		return static, nil
	}

	receiver, amount, err := im.registry.RoyaltyInfo(ctx, asset.Collection, asset.TokenId, referencePrice)
	if err != nil {
		ctx.WithField("err", err).WithField("collection", asset.Collection).Debug("royalty query failed, using static royalty")
		return static, nil
	}

	// an advertised answer is untrusted input: reject the zero recipient
	// and anything above half the reference price
	if receiver.IsEmpty() || amount == nil || amount.Sign() < 0 {
		return static, nil
	}
	if amount.Cmp(domain.MaxRoyaltyBps.Of(referencePrice)) > 0 {
		return static, nil
	}

	return &royalty.Resolution{
		Recipient: receiver.ToLower(),
		Amount:    new(big.Int).Set(amount),
		Source:    royalty.SourceDynamic,
	}, nil
}
