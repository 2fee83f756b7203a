package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/delivery"
	"github.com/nifty-xyz/goapi/domain"
	dActivity "github.com/nifty-xyz/goapi/domain/activity"
)

type handler struct {
	activity dActivity.Usecase
}

func New(e *echo.Echo, activity dActivity.Usecase, middlewares ...echo.MiddlewareFunc) {
	h := &handler{activity}
	e.GET("/activities", h.getActivities, middlewares...)
}

func (h *handler) getActivities(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		Collection *domain.Address `query:"collection"`
		TokenId    *domain.TokenId `query:"tokenId"`
		Actor      *domain.Address `query:"actor"`
		Type       *dActivity.Type `query:"type"`
		Offset     int32           `query:"offset"`
		Limit      int32           `query:"limit"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}

	opts := []dActivity.FindAllOptionsFunc{
		dActivity.WithPagination(p.Offset, p.Limit),
	}
	if p.Collection != nil && p.TokenId != nil {
		opts = append(opts, dActivity.WithAsset(*p.Collection, *p.TokenId))
	} else if p.Collection != nil {
		opts = append(opts, dActivity.WithCollection(*p.Collection))
	}
	if p.Actor != nil {
		opts = append(opts, dActivity.WithActor(*p.Actor))
	}
	if p.Type != nil {
		opts = append(opts, dActivity.WithType(*p.Type))
	}

	res, err := h.activity.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
