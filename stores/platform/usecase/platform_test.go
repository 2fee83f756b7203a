package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/platform"
)

var admin = domain.Address("0xAD01")

type platformSuite struct {
	suite.Suite

	im platform.Usecase
}

func TestPlatformSuite(t *testing.T) {
	suite.Run(t, new(platformSuite))
}

func (s *platformSuite) SetupTest() {
	s.im = New(&PlatformCfg{
		Admin: admin,
		Initial: platform.Settings{
			FeeRate:          250,
			FeeRecipient:     "0xFEE1",
			ListingFee:       big.NewInt(100),
			BidIncrementRate: 500,
			EscrowAccount:    "0xE5C0",
		},
	})
}

func (s *platformSuite) TestAdminUpdates() {
	c := ctx.Background()

	s.Nil(s.im.UpdateFeeRate(c, admin, 300))
	s.Nil(s.im.UpdateFeeRecipient(c, admin, "0xfee2"))
	s.Nil(s.im.UpdateListingFee(c, admin, big.NewInt(7)))
	s.Nil(s.im.UpdateBidIncrementRate(c, admin, 1000))
	s.Nil(s.im.SetRespectDynamicRoyalty(c, admin, true))

	got := s.im.Get(c)
	s.Equal(domain.BasisPoints(300), got.FeeRate)
	s.Equal(domain.Address("0xfee2"), got.FeeRecipient)
	s.Equal(int64(7), got.ListingFee.Int64())
	s.Equal(domain.BasisPoints(1000), got.BidIncrementRate)
	s.True(got.RespectDynamicRoyalty)
}

func (s *platformSuite) TestAdminAddressMatchIsCaseInsensitive() {
	c := ctx.Background()
	s.Nil(s.im.UpdateFeeRate(c, "0xad01", 10))
}

func (s *platformSuite) TestNonAdminRejected() {
	c := ctx.Background()
	mallory := domain.Address("0xBAD0")

	s.Equal(domain.ErrUnauthorized, s.im.UpdateFeeRate(c, mallory, 10))
	s.Equal(domain.ErrUnauthorized, s.im.UpdateFeeRecipient(c, mallory, "0xfee2"))
	s.Equal(domain.ErrUnauthorized, s.im.UpdateListingFee(c, mallory, big.NewInt(1)))
	s.Equal(domain.ErrUnauthorized, s.im.UpdateBidIncrementRate(c, mallory, 1))
	s.Equal(domain.ErrUnauthorized, s.im.SetRespectDynamicRoyalty(c, mallory, false))

	got := s.im.Get(c)
	s.Equal(domain.BasisPoints(250), got.FeeRate)
}

func (s *platformSuite) TestBoundsChecks() {
	c := ctx.Background()

	s.Equal(domain.ErrBadParamInput, s.im.UpdateFeeRate(c, admin, domain.MaxPlatformFeeBps+1))
	s.Equal(domain.ErrBadParamInput, s.im.UpdateListingFee(c, admin, big.NewInt(-1)))
	s.Equal(domain.ErrBadParamInput, s.im.UpdateBidIncrementRate(c, admin, domain.BpsDenominator+1))
	s.Equal(domain.ErrInvalidAddress, s.im.UpdateFeeRecipient(c, admin, domain.EmptyAddress))
}

func (s *platformSuite) TestGetReturnsCopy() {
	c := ctx.Background()
	got := s.im.Get(c)
	got.ListingFee.SetInt64(999999)

	s.Equal(int64(100), s.im.Get(c).ListingFee.Int64())
}
