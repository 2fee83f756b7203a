package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/platform"
	"github.com/nifty-xyz/goapi/domain/registry"
	mRegistry "github.com/nifty-xyz/goapi/domain/registry/mocks"
	"github.com/nifty-xyz/goapi/domain/royalty"
	platformUsecase "github.com/nifty-xyz/goapi/stores/platform/usecase"
)

var (
	admin    = domain.Address("0xad01")
	creator  = domain.Address("0xc4ea")
	receiver = domain.Address("0x4ec1")

	asset = domain.AssetRef{
		Collection: "0xc011",
		TokenId:    "3",
		TokenType:  domain.TokenType721,
	}
)

type resolverSuite struct {
	suite.Suite

	registry *mRegistry.AssetRegistry
	platform platform.Usecase
	im       royalty.Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(resolverSuite))
}

func (s *resolverSuite) SetupTest() {
	s.registry = &mRegistry.AssetRegistry{}
	s.platform = platformUsecase.New(&platformUsecase.PlatformCfg{
		Admin: admin,
		Initial: platform.Settings{
			RespectDynamicRoyalty: true,
		},
	})
	s.im = NewResolver(&ResolverCfg{
		Registry: s.registry,
		Platform: s.platform,
	})
}

func (s *resolverSuite) TearDownTest() {
	s.registry.AssertExpectations(s.T())
}

func (s *resolverSuite) TestDynamicAnswerWins() {
	c := ctx.Background()
	price := big.NewInt(10000)

	s.registry.On("SupportsCapability", mock.Anything, asset.Collection, registry.CapabilityRoyaltyInfo).Return(true, nil)
	s.registry.On("RoyaltyInfo", mock.Anything, asset.Collection, asset.TokenId, price).Return(receiver, big.NewInt(1000), nil)

	res, err := s.im.Resolve(c, asset, price, creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceDynamic, res.Source)
	s.Equal(receiver, res.Recipient)
	s.Equal(int64(1000), res.Amount.Int64())
}

func (s *resolverSuite) TestFlagOffUsesStatic() {
	c := ctx.Background()
	s.Nil(s.platform.SetRespectDynamicRoyalty(c, admin, false))

	res, err := s.im.Resolve(c, asset, big.NewInt(10000), creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceStatic, res.Source)
	s.Equal(creator, res.Recipient)
	s.Equal(int64(500), res.Amount.Int64())
}

func (s *resolverSuite) TestUnadvertisedCapabilityUsesStatic() {
	c := ctx.Background()
	s.registry.On("SupportsCapability", mock.Anything, asset.Collection, registry.CapabilityRoyaltyInfo).Return(false, nil)

	res, err := s.im.Resolve(c, asset, big.NewInt(10000), creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceStatic, res.Source)
}

func (s *resolverSuite) TestProbeFailureUsesStatic() {
	c := ctx.Background()
	s.registry.On("SupportsCapability", mock.Anything, asset.Collection, registry.CapabilityRoyaltyInfo).Return(false, errors.New("no such method"))

	res, err := s.im.Resolve(c, asset, big.NewInt(10000), creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceStatic, res.Source)
}

func (s *resolverSuite) TestQueryFailureUsesStatic() {
	c := ctx.Background()
	s.registry.On("SupportsCapability", mock.Anything, asset.Collection, registry.CapabilityRoyaltyInfo).Return(true, nil)
	s.registry.On("RoyaltyInfo", mock.Anything, asset.Collection, asset.TokenId, mock.Anything).Return(domain.EmptyAddress, nil, errors.New("revert"))

	res, err := s.im.Resolve(c, asset, big.NewInt(10000), creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceStatic, res.Source)
}

func (s *resolverSuite) TestZeroRecipientRejected() {
	c := ctx.Background()
	s.registry.On("SupportsCapability", mock.Anything, asset.Collection, registry.CapabilityRoyaltyInfo).Return(true, nil)
	s.registry.On("RoyaltyInfo", mock.Anything, asset.Collection, asset.TokenId, mock.Anything).Return(domain.EmptyAddress, big.NewInt(100), nil)

	res, err := s.im.Resolve(c, asset, big.NewInt(10000), creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceStatic, res.Source)
	s.Equal(creator, res.Recipient)
}

func (s *resolverSuite) TestExcessiveDynamicRoyaltyRejected() {
	c := ctx.Background()
	price := big.NewInt(10000)

	// 50% of the reference price is the hard ceiling
	s.registry.On("SupportsCapability", mock.Anything, asset.Collection, registry.CapabilityRoyaltyInfo).Return(true, nil)
	s.registry.On("RoyaltyInfo", mock.Anything, asset.Collection, asset.TokenId, price).Return(receiver, big.NewInt(5001), nil)

	res, err := s.im.Resolve(c, asset, price, creator, 500)
	s.Nil(err)
	s.Equal(royalty.SourceStatic, res.Source)
}

func (s *resolverSuite) TestInvalidInputs() {
	c := ctx.Background()

	_, err := s.im.Resolve(c, asset, big.NewInt(0), creator, 500)
	s.Equal(domain.ErrInvalidPrice, err)

	_, err = s.im.Resolve(c, asset, big.NewInt(100), creator, domain.MaxRoyaltyBps+1)
	s.Equal(domain.ErrInvalidRoyalty, err)
}
