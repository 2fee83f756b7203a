package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// listing and auction validation
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidRoyalty    = errors.New("invalid royalty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnsupportedAsset  = errors.New("unsupported asset")
	ErrInvalidAsset      = errors.New("invalid asset")

	// custody
	ErrNotOwner       = errors.New("not token owner")
	ErrNotApproved    = errors.New("escrow agent not approved")
	ErrTransferFailed = errors.New("transfer failed")

	// listing lifecycle
	ErrItemSold     = errors.New("item sold or listing inactive")
	ErrItemNotFound = errors.New("item not found")

	// auction lifecycle
	ErrReservePriceTooLow    = errors.New("reserve price below starting price")
	ErrBidBelowStartingPrice = errors.New("bid below starting price")
	ErrBidTooLow             = errors.New("bid below minimum increment")
	ErrCannotBidOnOwnAuction = errors.New("cannot bid on own auction")
	ErrActiveAuctionExists   = errors.New("active auction already exists")
	ErrAuctionNotActive      = errors.New("auction not active")
	ErrAuctionEnded          = errors.New("auction already ended")
	ErrAuctionStillActive    = errors.New("auction still active")
	ErrAuctionHasBids        = errors.New("auction already has bids")
	ErrNoPendingReturns      = errors.New("no pending returns")

	// access control
	ErrUnauthorized = errors.New("unauthorized")

	// ErrReentrantCall is returned when a value-moving operation is entered
	// again before the previous invocation finished.
	ErrReentrantCall = errors.New("reentrant call")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
)
