package http

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/delivery"
	"github.com/nifty-xyz/goapi/domain"
	dListing "github.com/nifty-xyz/goapi/domain/listing"
)

type handler struct {
	listing dListing.Usecase
}

// New registers listing routes. Mutating routes go through the auth
// middleware so the acting address is always the verified token address.
func New(e *echo.Echo, authMiddleware echo.MiddlewareFunc, listing dListing.Usecase) {
	h := &handler{listing}
	g := e.Group("/listings")
	g.GET("", h.getListings)
	g.GET("/:id", h.getListing)
	g.POST("", h.createListing, authMiddleware)
	g.POST("/:id/buy", h.buyListing, authMiddleware)
	g.DELETE("/:id", h.cancelListing, authMiddleware)
}

func (h *handler) createListing(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	seller := _ctx.Get("address").(domain.Address)

	type params struct {
		Collection  domain.Address   `json:"collection"`
		TokenId     domain.TokenId   `json:"tokenId"`
		TokenType   domain.TokenType `json:"tokenType"`
		Quantity    int64            `json:"quantity"`
		UnitPrice   string           `json:"unitPrice"`
		RoyaltyRate int64            `json:"royaltyRate"`
		Payment     string           `json:"payment"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	unitPrice, ok := parseAmount(p.UnitPrice)
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid unitPrice")
	}
	payment, ok := parseAmount(p.Payment)
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid payment")
	}

	res, err := h.listing.Create(ctx, dListing.CreateReq{
		Asset: domain.AssetRef{
			Collection: p.Collection,
			TokenId:    p.TokenId,
			TokenType:  p.TokenType,
		},
		Seller:      seller,
		Quantity:    p.Quantity,
		UnitPrice:   unitPrice,
		RoyaltyRate: domain.BasisPoints(p.RoyaltyRate),
		Payment:     payment,
	})
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusCreated, res)
}

func (h *handler) buyListing(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	buyer := _ctx.Get("address").(domain.Address)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	type params struct {
		Quantity int64  `json:"quantity"`
		Payment  string `json:"payment"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	payment, ok := parseAmount(p.Payment)
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid payment")
	}

	res, err := h.listing.Buy(ctx, dListing.BuyReq{
		ListingId: id,
		Buyer:     buyer,
		Quantity:  p.Quantity,
		Payment:   payment,
	})
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) cancelListing(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	if err := h.listing.Cancel(ctx, caller, id); err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) getListing(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	res, err := h.listing.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getListings(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	type params struct {
		Seller     *domain.Address `query:"seller"`
		Collection *domain.Address `query:"collection"`
		TokenId    *domain.TokenId `query:"tokenId"`
		Cursor     int64           `query:"cursor"`
		Limit      int             `query:"limit"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if p.Seller != nil {
		res, err := h.listing.GetBySeller(ctx, *p.Seller)
		if err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
		return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
	}
	if p.Collection != nil && p.TokenId != nil {
		res, err := h.listing.GetByAsset(ctx, *p.Collection, *p.TokenId)
		if err != nil {
			return delivery.MakeJsonResp(_ctx, errStatus(err), err)
		}
		return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
	}

	if p.Limit <= 0 {
		p.Limit = 20
	}
	res, err := h.listing.GetActive(ctx, p.Cursor, p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func parseAmount(s string) (*big.Int, bool) {
	if s == "" {
		return new(big.Int), true
	}
	return new(big.Int).SetString(s, 10)
}

func errStatus(err error) int {
	switch err {
	case domain.ErrItemNotFound:
		return http.StatusNotFound
	case domain.ErrItemSold, domain.ErrReentrantCall:
		return http.StatusConflict
	case domain.ErrNotOwner:
		return http.StatusForbidden
	case domain.ErrInvalidPrice, domain.ErrInvalidQuantity, domain.ErrInvalidRoyalty,
		domain.ErrInvalidAsset, domain.ErrUnsupportedAsset, domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrInsufficientFunds:
		return http.StatusPaymentRequired
	case domain.ErrNotApproved:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
