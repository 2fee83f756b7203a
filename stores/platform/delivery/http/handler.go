package http

import (
	"math/big"
	"net/http"

	"github.com/labstack/echo/v4"
	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/delivery"
	"github.com/nifty-xyz/goapi/domain"
	dPlatform "github.com/nifty-xyz/goapi/domain/platform"
)

type handler struct {
	platform dPlatform.Usecase
}

// New registers the settings routes. Updates require both a valid token
// and the admin middleware on top of the usecase's own caller check.
func New(e *echo.Echo, authMiddleware, adminMiddleware echo.MiddlewareFunc, platform dPlatform.Usecase) {
	h := &handler{platform}
	g := e.Group("/settings")
	g.GET("", h.getSettings)
	g.PUT("", h.updateSettings, authMiddleware, adminMiddleware)
}

func (h *handler) getSettings(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	return delivery.MakeJsonResp(_ctx, http.StatusOK, h.platform.Get(ctx))
}

func (h *handler) updateSettings(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	type params struct {
		FeeRate               *int64          `json:"feeRate"`
		FeeRecipient          *domain.Address `json:"feeRecipient"`
		ListingFee            *string         `json:"listingFee"`
		BidIncrementRate      *int64          `json:"bidIncrementRate"`
		RespectDynamicRoyalty *bool           `json:"respectDynamicRoyalty"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if p.FeeRate != nil {
		if err := h.platform.UpdateFeeRate(ctx, caller, domain.BasisPoints(*p.FeeRate)); err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
	}
	if p.FeeRecipient != nil {
		if err := h.platform.UpdateFeeRecipient(ctx, caller, *p.FeeRecipient); err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
	}
	if p.ListingFee != nil {
		fee, ok := new(big.Int).SetString(*p.ListingFee, 10)
		if !ok {
			return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid listingFee")
		}
		if err := h.platform.UpdateListingFee(ctx, caller, fee); err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
	}
	if p.BidIncrementRate != nil {
		if err := h.platform.UpdateBidIncrementRate(ctx, caller, domain.BasisPoints(*p.BidIncrementRate)); err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
	}
	if p.RespectDynamicRoyalty != nil {
		if err := h.platform.SetRespectDynamicRoyalty(ctx, caller, *p.RespectDynamicRoyalty); err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
	}

	return delivery.MakeJsonResp(_ctx, http.StatusOK, h.platform.Get(ctx))
}

func errStatus(err error) int {
	switch err {
	case domain.ErrUnauthorized:
		return http.StatusForbidden
	case domain.ErrBadParamInput, domain.ErrInvalidAddress:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
