package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	mRegistry "github.com/nifty-xyz/goapi/domain/registry/mocks"
)

var (
	escrow = domain.Address("0xe5c0")
	seller = domain.Address("0x5e11")
	buyer  = domain.Address("0xb111")

	asset721 = domain.AssetRef{
		Collection: "0xc011",
		TokenId:    "1",
		TokenType:  domain.TokenType721,
	}
	asset1155 = domain.AssetRef{
		Collection: "0xc022",
		TokenId:    "7",
		TokenType:  domain.TokenType1155,
	}
)

type custodySuite struct {
	suite.Suite

	registry *mRegistry.AssetRegistry
	im       *impl
}

func TestCustodySuite(t *testing.T) {
	suite.Run(t, new(custodySuite))
}

func (s *custodySuite) SetupTest() {
	s.registry = &mRegistry.AssetRegistry{}
	s.im = New(s.registry, escrow).(*impl)
}

func (s *custodySuite) TearDownTest() {
	s.registry.AssertExpectations(s.T())
}

func (s *custodySuite) TestEscrow721() {
	c := ctx.Background()
	s.registry.On("OwnerOf", mock.Anything, asset721.Collection, asset721.TokenId).Return(seller, nil)
	s.registry.On("IsApprovedForAll", mock.Anything, asset721.Collection, seller, escrow).Return(true, nil)
	s.registry.On("Transfer", mock.Anything, asset721, int64(1), seller, escrow).Return(nil)

	s.Nil(s.im.VerifyAndEscrow(c, asset721, seller, 1))
}

func (s *custodySuite) TestEscrow721NotOwner() {
	c := ctx.Background()
	s.registry.On("OwnerOf", mock.Anything, asset721.Collection, asset721.TokenId).Return(buyer, nil)

	s.Equal(domain.ErrNotOwner, s.im.VerifyAndEscrow(c, asset721, seller, 1))
}

func (s *custodySuite) TestEscrow721FallsBackToSingleApproval() {
	c := ctx.Background()
	s.registry.On("OwnerOf", mock.Anything, asset721.Collection, asset721.TokenId).Return(seller, nil)
	s.registry.On("IsApprovedForAll", mock.Anything, asset721.Collection, seller, escrow).Return(false, nil)
	s.registry.On("IsApproved", mock.Anything, asset721.Collection, asset721.TokenId, escrow).Return(true, nil)
	s.registry.On("Transfer", mock.Anything, asset721, int64(1), seller, escrow).Return(nil)

	s.Nil(s.im.VerifyAndEscrow(c, asset721, seller, 1))
}

func (s *custodySuite) TestEscrow721NotApproved() {
	c := ctx.Background()
	s.registry.On("OwnerOf", mock.Anything, asset721.Collection, asset721.TokenId).Return(seller, nil)
	s.registry.On("IsApprovedForAll", mock.Anything, asset721.Collection, seller, escrow).Return(false, nil)
	s.registry.On("IsApproved", mock.Anything, asset721.Collection, asset721.TokenId, escrow).Return(false, nil)

	s.Equal(domain.ErrNotApproved, s.im.VerifyAndEscrow(c, asset721, seller, 1))
}

func (s *custodySuite) TestEscrow1155() {
	c := ctx.Background()
	s.registry.On("BalanceOf", mock.Anything, asset1155.Collection, asset1155.TokenId, seller).Return(big.NewInt(100), nil)
	s.registry.On("IsApprovedForAll", mock.Anything, asset1155.Collection, seller, escrow).Return(true, nil)
	s.registry.On("Transfer", mock.Anything, asset1155, int64(40), seller, escrow).Return(nil)

	s.Nil(s.im.VerifyAndEscrow(c, asset1155, seller, 40))
}

func (s *custodySuite) TestEscrow1155InsufficientBalance() {
	c := ctx.Background()
	s.registry.On("BalanceOf", mock.Anything, asset1155.Collection, asset1155.TokenId, seller).Return(big.NewInt(10), nil)

	s.Equal(domain.ErrNotOwner, s.im.VerifyAndEscrow(c, asset1155, seller, 40))
}

func (s *custodySuite) TestEscrowTransferFailure() {
	c := ctx.Background()
	s.registry.On("OwnerOf", mock.Anything, asset721.Collection, asset721.TokenId).Return(seller, nil)
	s.registry.On("IsApprovedForAll", mock.Anything, asset721.Collection, seller, escrow).Return(true, nil)
	s.registry.On("Transfer", mock.Anything, asset721, int64(1), seller, escrow).Return(errors.New("rpc down"))

	err := s.im.VerifyAndEscrow(c, asset721, seller, 1)
	s.ErrorIs(err, domain.ErrTransferFailed)
}

func (s *custodySuite) TestRelease() {
	c := ctx.Background()
	s.registry.On("Transfer", mock.Anything, asset1155, int64(40), escrow, buyer).Return(nil)

	s.Nil(s.im.Release(c, asset1155, 40, buyer))
}

func (s *custodySuite) TestReleaseFailureSurfaces() {
	c := ctx.Background()
	s.registry.On("Transfer", mock.Anything, asset721, int64(1), escrow, buyer).Return(errors.New("reverted"))

	s.ErrorIs(s.im.Release(c, asset721, 1, buyer), domain.ErrTransferFailed)
}
