package http

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/delivery"
	"github.com/nifty-xyz/goapi/domain"
	dAuction "github.com/nifty-xyz/goapi/domain/auction"
)

type handler struct {
	auction dAuction.Usecase
}

func New(e *echo.Echo, authMiddleware echo.MiddlewareFunc, auction dAuction.Usecase) {
	h := &handler{auction}
	g := e.Group("/auctions")
	g.GET("/:id", h.getAuction)
	g.POST("", h.createAuction, authMiddleware)
	g.POST("/:id/bids", h.placeBid, authMiddleware)
	g.POST("/:id/end", h.endAuction, authMiddleware)
	g.DELETE("/:id", h.cancelAuction, authMiddleware)

	e.GET("/pendingReturns/:address", h.getPendingReturns)
	e.POST("/pendingReturns/withdraw", h.withdrawPendingReturns, authMiddleware)
}

func (h *handler) createAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	seller := _ctx.Get("address").(domain.Address)

	type params struct {
		Collection    domain.Address   `json:"collection"`
		TokenId       domain.TokenId   `json:"tokenId"`
		TokenType     domain.TokenType `json:"tokenType"`
		Quantity      int64            `json:"quantity"`
		StartingPrice string           `json:"startingPrice"`
		ReservePrice  string           `json:"reservePrice"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	starting, ok := parseAmount(p.StartingPrice)
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid startingPrice")
	}
	reserve, ok := parseAmount(p.ReservePrice)
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid reservePrice")
	}

	res, err := h.auction.Create(ctx, dAuction.CreateReq{
		Asset: domain.AssetRef{
			Collection: p.Collection,
			TokenId:    p.TokenId,
			TokenType:  p.TokenType,
		},
		Quantity:      p.Quantity,
		Seller:        seller,
		StartingPrice: starting,
		ReservePrice:  reserve,
	})
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusCreated, res)
}

func (h *handler) placeBid(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	bidder := _ctx.Get("address").(domain.Address)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	type params struct {
		Amount string `json:"amount"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	amount, ok := parseAmount(p.Amount)
	if !ok {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid amount")
	}

	res, err := h.auction.PlaceBid(ctx, dAuction.BidReq{
		AuctionId: id,
		Bidder:    bidder,
		Amount:    amount,
	})
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) endAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	res, err := h.auction.End(ctx, caller, id)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) cancelAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	if err := h.auction.Cancel(ctx, caller, id); err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) getAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	id, err := strconv.ParseInt(_ctx.Param("id"), 10, 64)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid id")
	}

	res, err := h.auction.Get(ctx, id)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getPendingReturns(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	owed, err := h.auction.GetPendingReturns(ctx, domain.Address(_ctx.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	res := struct {
		Amount string `json:"amount"`
	}{
		Amount: owed.String(),
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) withdrawPendingReturns(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	owed, err := h.auction.WithdrawPendingReturns(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, errStatus(err), err)
	}
	res := struct {
		Amount string `json:"amount"`
	}{
		Amount: owed.String(),
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
	case domain.ErrActiveAuctionExists, domain.ErrAuctionHasBids, domain.ErrAuctionEnded,
		domain.ErrAuctionNotActive, domain.ErrAuctionStillActive, domain.ErrReentrantCall:
		return http.StatusConflict
	case domain.ErrNotOwner, domain.ErrCannotBidOnOwnAuction:
		return http.StatusForbidden
	case domain.ErrInvalidPrice, domain.ErrInvalidQuantity, domain.ErrInvalidAsset,
		domain.ErrUnsupportedAsset, domain.ErrInvalidAddress, domain.ErrReservePriceTooLow,
		domain.ErrBidBelowStartingPrice, domain.ErrBidTooLow, domain.ErrBadParamInput:
		return http.StatusBadRequest
	case domain.ErrInsufficientFunds, domain.ErrNoPendingReturns:
		return http.StatusPaymentRequired
	case domain.ErrNotApproved:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
