package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	mActivity "github.com/nifty-xyz/goapi/domain/activity/mocks"
	mCustody "github.com/nifty-xyz/goapi/domain/custody/mocks"
	"github.com/nifty-xyz/goapi/domain/listing"
	"github.com/nifty-xyz/goapi/domain/payment"
	"github.com/nifty-xyz/goapi/domain/platform"
	"github.com/nifty-xyz/goapi/domain/royalty"
	mRoyalty "github.com/nifty-xyz/goapi/domain/royalty/mocks"
	listingRepo "github.com/nifty-xyz/goapi/stores/listing/repository"
	platformUsecase "github.com/nifty-xyz/goapi/stores/platform/usecase"
	"github.com/nifty-xyz/goapi/service/treasury"
)

var (
	admin        = domain.Address("0xad01")
	seller       = domain.Address("0x5e11")
	buyer        = domain.Address("0xb0b0")
	creator      = domain.Address("0xc4ea")
	feeRecipient = domain.Address("0xfee1")
	escrow       = domain.Address("0xe5c4")

	nft = domain.AssetRef{
		Collection: "0xc011",
		TokenId:    "7",
		TokenType:  domain.TokenType721,
	}
	multi = domain.AssetRef{
		Collection: "0xc011",
		TokenId:    "8",
		TokenType:  domain.TokenType1155,
	}
)

type listingSuite struct {
	suite.Suite

	repo       listing.Repo
	custody    *mCustody.Adapter
	resolver   *mRoyalty.Resolver
	platform   platform.Usecase
	treasury   payment.Treasury
	activityUC *mActivity.Usecase
	im         listing.Usecase
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func (s *listingSuite) SetupTest() {
	s.setup(platform.Settings{
		FeeRate:         250,
		FeeRecipient:    feeRecipient,
		ListingFee:      big.NewInt(100),
		EscrowAccount:   escrow,
		AuctionDuration: time.Hour,
	})
}

func (s *listingSuite) setup(settings platform.Settings) {
	s.repo = listingRepo.NewArena()
	s.custody = &mCustody.Adapter{}
	s.resolver = &mRoyalty.Resolver{}
	s.activityUC = &mActivity.Usecase{}
	s.activityUC.On("Log", mock.Anything, mock.Anything).Maybe()
	s.platform = platformUsecase.New(&platformUsecase.PlatformCfg{
		Admin:   admin,
		Initial: settings,
	})
	s.treasury = treasury.NewWithBalances(map[domain.Address]*big.Int{
		seller: big.NewInt(1_000_000),
		buyer:  big.NewInt(1_000_000),
	})
	s.im = New(&ListingUseCaseCfg{
		ListingRepo: s.repo,
		Custody:     s.custody,
		Royalty:     s.resolver,
		Platform:    s.platform,
		Treasury:    s.treasury,
		ActivityUC:  s.activityUC,
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func (s *listingSuite) TearDownTest() {
	s.custody.AssertExpectations(s.T())
	s.resolver.AssertExpectations(s.T())
}

func (s *listingSuite) balance(owner domain.Address) int64 {
	b, err := s.treasury.BalanceOf(ctx.Background(), owner)
	s.Require().Nil(err)
	return b.Int64()
}

func (s *listingSuite) staticResolution(recipient domain.Address, amount int64) *royalty.Resolution {
	return &royalty.Resolution{
		Recipient: recipient,
		Amount:    big.NewInt(amount),
		Source:    royalty.SourceStatic,
	}
}

func (s *listingSuite) create(asset domain.AssetRef, qty, unitPrice int64) *listing.Listing {
	c := ctx.Background()
	fee := s.platform.Get(c).ListingFee
	s.custody.On("VerifyAndEscrow", mock.Anything, asset, seller, qty).Return(nil).Once()
	s.resolver.On("Resolve", mock.Anything, asset, big.NewInt(unitPrice), seller, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, unitPrice*500/10000), nil).Once()

	l, err := s.im.Create(c, listing.CreateReq{
		Asset:       asset,
		Seller:      seller,
		Quantity:    qty,
		UnitPrice:   big.NewInt(unitPrice),
		RoyaltyRate: 500,
		Payment:     new(big.Int).Set(fee),
	})
	s.Require().Nil(err)
	return l
}

func (s *listingSuite) TestCreate() {
	l := s.create(nft, 1, 10000)

	s.Equal(int64(1), l.Id)
	s.True(l.Active)
	s.Equal(creator, l.Creator)
	s.Equal(int64(1), l.RemainingQty)
	s.Equal("0.00000000000001", l.DisplayPrice)

	// listing fee moved seller -> fee recipient
	s.Equal(int64(1_000_000-100), s.balance(seller))
	s.Equal(int64(100), s.balance(feeRecipient))

	got, err := s.im.Get(ctx.Background(), 1)
	s.Nil(err)
	s.Equal(l.Id, got.Id)
}

func (s *listingSuite) TestCreateSequentialIds() {
	s.Equal(int64(1), s.create(nft, 1, 10000).Id)
	s.Equal(int64(2), s.create(multi, 5, 2000).Id)
}

func (s *listingSuite) TestCreateValidation() {
	c := ctx.Background()

	_, err := s.im.Create(c, listing.CreateReq{Asset: nft, Seller: seller, Quantity: 1, UnitPrice: big.NewInt(0), Payment: big.NewInt(100)})
	s.ErrorIs(err, domain.ErrInvalidPrice)

	_, err = s.im.Create(c, listing.CreateReq{Asset: nft, Seller: seller, Quantity: 2, UnitPrice: big.NewInt(1), Payment: big.NewInt(100)})
	s.ErrorIs(err, domain.ErrInvalidQuantity)

	_, err = s.im.Create(c, listing.CreateReq{Asset: multi, Seller: seller, Quantity: 0, UnitPrice: big.NewInt(1), Payment: big.NewInt(100)})
	s.ErrorIs(err, domain.ErrInvalidQuantity)

	_, err = s.im.Create(c, listing.CreateReq{Asset: nft, Seller: seller, Quantity: 1, UnitPrice: big.NewInt(1), RoyaltyRate: 5001, Payment: big.NewInt(100)})
	s.ErrorIs(err, domain.ErrInvalidRoyalty)

	bad := nft
	bad.TokenType = domain.TokenType(20)
	_, err = s.im.Create(c, listing.CreateReq{Asset: bad, Seller: seller, Quantity: 1, UnitPrice: big.NewInt(1), Payment: big.NewInt(100)})
	s.ErrorIs(err, domain.ErrUnsupportedAsset)
}

func (s *listingSuite) TestCreateExactFeeRequired() {
	c := ctx.Background()

	_, err := s.im.Create(c, listing.CreateReq{Asset: nft, Seller: seller, Quantity: 1, UnitPrice: big.NewInt(1000), Payment: big.NewInt(99)})
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	_, err = s.im.Create(c, listing.CreateReq{Asset: nft, Seller: seller, Quantity: 1, UnitPrice: big.NewInt(1000), Payment: big.NewInt(101)})
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	s.Equal(int64(1_000_000), s.balance(seller))
}

func (s *listingSuite) TestCreateEscrowFailureRefundsFee() {
	c := ctx.Background()
	s.custody.On("VerifyAndEscrow", mock.Anything, nft, seller, int64(1)).Return(domain.ErrNotApproved).Once()
	s.resolver.On("Resolve", mock.Anything, nft, mock.Anything, seller, domain.BasisPoints(0)).
		Return(s.staticResolution(seller, 0), nil).Once()

	_, err := s.im.Create(c, listing.CreateReq{Asset: nft, Seller: seller, Quantity: 1, UnitPrice: big.NewInt(1000), Payment: big.NewInt(100)})
	s.ErrorIs(err, domain.ErrNotApproved)

	s.Equal(int64(1_000_000), s.balance(seller))
	s.Equal(int64(0), s.balance(feeRecipient))
}

func (s *listingSuite) TestBuy() {
	l := s.create(nft, 1, 10000)

	s.resolver.On("Resolve", mock.Anything, nft, big.NewInt(10000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, 500), nil).Once()
	s.custody.On("Release", mock.Anything, nft, int64(1), buyer).Return(nil).Once()

	got, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  1,
		Payment:   big.NewInt(10000),
	})
	s.Require().Nil(err)
	s.False(got.Active)
	s.Equal(int64(0), got.RemainingQty)

	// gross 10000: fee 2.5% = 250, royalty 500, seller 9250
	s.Equal(int64(1_000_000-10000), s.balance(buyer))
	s.Equal(int64(1_000_000-100+9250), s.balance(seller))
	s.Equal(int64(100+250), s.balance(feeRecipient))
	s.Equal(int64(500), s.balance(creator))
	s.Equal(int64(0), s.balance(escrow))
}

func (s *listingSuite) TestBuyRefundsOverpayment() {
	l := s.create(nft, 1, 10000)

	s.resolver.On("Resolve", mock.Anything, nft, big.NewInt(10000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, 500), nil).Once()
	s.custody.On("Release", mock.Anything, nft, int64(1), buyer).Return(nil).Once()

	_, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  1,
		Payment:   big.NewInt(15000),
	})
	s.Require().Nil(err)

	s.Equal(int64(1_000_000-10000), s.balance(buyer))
	s.Equal(int64(0), s.balance(escrow))
}

func (s *listingSuite) TestBuyPartialFillStaysActive() {
	l := s.create(multi, 5, 2000)

	s.resolver.On("Resolve", mock.Anything, multi, big.NewInt(4000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, 200), nil).Once()
	s.custody.On("Release", mock.Anything, multi, int64(2), buyer).Return(nil).Once()

	got, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  2,
		Payment:   big.NewInt(4000),
	})
	s.Require().Nil(err)
	s.True(got.Active)
	s.Equal(int64(3), got.RemainingQty)

	_, err = s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  4,
		Payment:   big.NewInt(8000),
	})
	s.ErrorIs(err, domain.ErrInvalidQuantity)
}

func (s *listingSuite) TestBuyUnderpaid() {
	l := s.create(nft, 1, 10000)

	_, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  1,
		Payment:   big.NewInt(9999),
	})
	s.ErrorIs(err, domain.ErrInsufficientFunds)
	s.Equal(int64(1_000_000), s.balance(buyer))
}

func (s *listingSuite) TestBuyUnknownAndInactive() {
	c := ctx.Background()
	_, err := s.im.Buy(c, listing.BuyReq{ListingId: 9, Buyer: buyer, Quantity: 1, Payment: big.NewInt(1)})
	s.ErrorIs(err, domain.ErrItemNotFound)

	l := s.create(nft, 1, 10000)
	s.custody.On("Release", mock.Anything, nft, int64(1), seller).Return(nil).Once()
	s.Require().Nil(s.im.Cancel(c, seller, l.Id))

	_, err = s.im.Buy(c, listing.BuyReq{ListingId: l.Id, Buyer: buyer, Quantity: 1, Payment: big.NewInt(10000)})
	s.ErrorIs(err, domain.ErrItemSold)
}

func (s *listingSuite) TestBuyRoyaltyFailureFoldsIntoSeller() {
	l := s.create(nft, 1, 10000)

	// empty recipient makes the royalty transfer fail; the sale proceeds
	s.resolver.On("Resolve", mock.Anything, nft, big.NewInt(10000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(domain.EmptyAddress, 500), nil).Once()
	s.custody.On("Release", mock.Anything, nft, int64(1), buyer).Return(nil).Once()

	_, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  1,
		Payment:   big.NewInt(10000),
	})
	s.Require().Nil(err)

	// seller takes 9250 + the 500 royalty share
	s.Equal(int64(1_000_000-100+9750), s.balance(seller))
	s.Equal(int64(100+250), s.balance(feeRecipient))
	s.Equal(int64(0), s.balance(escrow))
}

func (s *listingSuite) TestBuyFeeFailureRollsBackAll() {
	s.setup(platform.Settings{
		FeeRate:       250,
		FeeRecipient:  domain.EmptyAddress,
		ListingFee:    new(big.Int),
		EscrowAccount: escrow,
	})
	l := s.create(nft, 1, 10000)

	s.resolver.On("Resolve", mock.Anything, nft, big.NewInt(10000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, 500), nil).Once()

	_, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  1,
		Payment:   big.NewInt(10000),
	})
	s.ErrorIs(err, domain.ErrTransferFailed)

	// payment and royalty legs compensated, nothing stuck in escrow
	s.Equal(int64(1_000_000), s.balance(buyer))
	s.Equal(int64(0), s.balance(creator))
	s.Equal(int64(0), s.balance(escrow))

	got, err := s.im.Get(ctx.Background(), l.Id)
	s.Nil(err)
	s.True(got.Active)
	s.Equal(int64(1), got.RemainingQty)
}

func (s *listingSuite) TestBuyReleaseFailureRollsBackAll() {
	l := s.create(nft, 1, 10000)

	s.resolver.On("Resolve", mock.Anything, nft, big.NewInt(10000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, 500), nil).Once()
	s.custody.On("Release", mock.Anything, nft, int64(1), buyer).Return(domain.ErrTransferFailed).Once()

	_, err := s.im.Buy(ctx.Background(), listing.BuyReq{
		ListingId: l.Id,
		Buyer:     buyer,
		Quantity:  1,
		Payment:   big.NewInt(10000),
	})
	s.ErrorIs(err, domain.ErrTransferFailed)

	s.Equal(int64(1_000_000), s.balance(buyer))
	s.Equal(int64(1_000_000-100), s.balance(seller))
	s.Equal(int64(100), s.balance(feeRecipient))
	s.Equal(int64(0), s.balance(creator))
	s.Equal(int64(0), s.balance(escrow))
}

func (s *listingSuite) TestCancel() {
	l := s.create(multi, 5, 2000)
	s.custody.On("Release", mock.Anything, multi, int64(5), seller).Return(nil).Once()

	s.Require().Nil(s.im.Cancel(ctx.Background(), seller, l.Id))

	got, err := s.im.Get(ctx.Background(), l.Id)
	s.Nil(err)
	s.False(got.Active)
	s.Equal(int64(0), got.RemainingQty)

	// the listing fee stays with the fee recipient
	s.Equal(int64(100), s.balance(feeRecipient))
}

func (s *listingSuite) TestCancelAuthorization() {
	c := ctx.Background()
	l := s.create(nft, 1, 10000)

	s.ErrorIs(s.im.Cancel(c, buyer, l.Id), domain.ErrNotOwner)
	s.ErrorIs(s.im.Cancel(c, seller, 42), domain.ErrItemNotFound)

	s.custody.On("Release", mock.Anything, nft, int64(1), seller).Return(nil).Once()
	s.Require().Nil(s.im.Cancel(c, seller, l.Id))
	s.ErrorIs(s.im.Cancel(c, seller, l.Id), domain.ErrItemSold)
}

func (s *listingSuite) TestGetActivePagination() {
	for i := 0; i < 3; i++ {
		s.create(multi, 5, 2000)
	}

	page, err := s.im.GetActive(ctx.Background(), 0, 2)
	s.Require().Nil(err)
	s.Len(page.Items, 2)
	s.Equal(int64(2), page.NextCursor)
	s.Equal("0.000000000000002", page.Items[0].DisplayPrice)

	page, err = s.im.GetActive(ctx.Background(), page.NextCursor, 2)
	s.Require().Nil(err)
	s.Len(page.Items, 1)
	s.Equal(int64(0), page.NextCursor)
}

func (s *listingSuite) TestGetBySellerAndAsset() {
	s.create(nft, 1, 10000)
	s.create(multi, 5, 2000)

	bySeller, err := s.im.GetBySeller(ctx.Background(), seller)
	s.Nil(err)
	s.Len(bySeller, 2)

	byAsset, err := s.im.GetByAsset(ctx.Background(), multi.Collection, multi.TokenId)
	s.Nil(err)
	s.Len(byAsset, 1)
	s.Equal(multi.TokenId, byAsset[0].TokenId)
}

func (s *listingSuite) TestCancelWaitsForInFlightBuy() {
	l := s.create(multi, 10, 2000)

	releasing := make(chan struct{})
	finish := make(chan struct{})
	s.resolver.On("Resolve", mock.Anything, multi, big.NewInt(2000), creator, domain.BasisPoints(500)).
		Return(s.staticResolution(creator, 100), nil).Once()
	s.custody.On("Release", mock.Anything, multi, int64(1), buyer).
		Run(func(mock.Arguments) {
			close(releasing)
			<-finish
		}).Return(nil).Once()
	s.custody.On("Release", mock.Anything, multi, int64(9), seller).Return(nil).Once()

	buyDone := make(chan error, 1)
	go func() {
		_, err := s.im.Buy(ctx.Background(), listing.BuyReq{
			ListingId: l.Id,
			Buyer:     buyer,
			Quantity:  1,
			Payment:   big.NewInt(2000),
		})
		buyDone <- err
	}()
	<-releasing

	cancelDone := make(chan error, 1)
	go func() {
		cancelDone <- s.im.Cancel(ctx.Background(), seller, l.Id)
	}()

	// Cancel must not run against the same listing while Buy is mid-settlement.
	select {
	case <-cancelDone:
		s.FailNow("cancel ran concurrently with an in-flight buy")
	case <-time.After(50 * time.Millisecond):
	}

	close(finish)
	s.Require().Nil(<-buyDone)
	s.Require().Nil(<-cancelDone)

	got, err := s.im.Get(ctx.Background(), l.Id)
	s.Nil(err)
	s.False(got.Active)
	s.Equal(int64(0), got.RemainingQty)
}
