package repository

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/auction"
)

type arenaSuite struct {
	suite.Suite

	repo auction.Repo
}

func TestAuctionArenaSuite(t *testing.T) {
	suite.Run(t, new(arenaSuite))
}

func (s *arenaSuite) SetupTest() {
	s.repo = NewArena()
}

func (s *arenaSuite) newAuction(tokenId domain.TokenId, quantity int64) *auction.Auction {
	return &auction.Auction{
		AssetRef: domain.AssetRef{
			Collection: "0xC011",
			TokenId:    tokenId,
			TokenType:  domain.TokenType1155,
		},
		Quantity:      quantity,
		Seller:        "0x5e11",
		StartingPrice: big.NewInt(100),
		ReservePrice:  big.NewInt(200),
		EndTime:       time.Unix(1700003600, 0),
		State:         auction.StateActive,
	}
}

func (s *arenaSuite) TestIdsAreSequentialFromOne() {
	c := ctx.Background()

	id1, err := s.repo.Create(c, s.newAuction("1", 1))
	s.Nil(err)
	id2, err := s.repo.Create(c, s.newAuction("2", 1))
	s.Nil(err)

	s.Equal(int64(1), id1)
	s.Equal(int64(2), id2)
}

func (s *arenaSuite) TestSlotIsExclusiveWhileActive() {
	c := ctx.Background()

	id, err := s.repo.Create(c, s.newAuction("1", 1))
	s.Require().Nil(err)

	_, err = s.repo.Create(c, s.newAuction("1", 1))
	s.Equal(domain.ErrActiveAuctionExists, err)

	// a different quantity is a different slot
	_, err = s.repo.Create(c, s.newAuction("1", 3))
	s.Nil(err)

	au, err := s.repo.FindOne(c, id)
	s.Require().Nil(err)
	au.State = auction.StateCancelled
	s.Require().Nil(s.repo.Update(c, au))

	// slot freed by the transition out of active
	_, err = s.repo.Create(c, s.newAuction("1", 1))
	s.Nil(err)
}

func (s *arenaSuite) TestFindActiveBySlot() {
	c := ctx.Background()

	id, err := s.repo.Create(c, s.newAuction("7", 2))
	s.Require().Nil(err)

	found, err := s.repo.FindActiveBySlot(c, domain.AssetRef{Collection: "0xc011", TokenId: "7", TokenType: domain.TokenType1155}, 2)
	s.Require().Nil(err)
	s.Equal(id, found.Id)

	_, err = s.repo.FindActiveBySlot(c, domain.AssetRef{Collection: "0xc011", TokenId: "7", TokenType: domain.TokenType1155}, 1)
	s.Equal(domain.ErrItemNotFound, err)
}

func (s *arenaSuite) TestFindOneReturnsCopy() {
	c := ctx.Background()

	id, err := s.repo.Create(c, s.newAuction("1", 1))
	s.Require().Nil(err)

	au, err := s.repo.FindOne(c, id)
	s.Require().Nil(err)
	au.HighestBid = big.NewInt(123)
	au.StartingPrice.SetInt64(999)

	again, err := s.repo.FindOne(c, id)
	s.Require().Nil(err)
	s.Nil(again.HighestBid)
	s.Equal(int64(100), again.StartingPrice.Int64())
}

func (s *arenaSuite) TestFindOneUnknownId() {
	c := ctx.Background()

	_, err := s.repo.FindOne(c, 0)
	s.Equal(domain.ErrItemNotFound, err)
	_, err = s.repo.FindOne(c, 42)
	s.Equal(domain.ErrItemNotFound, err)
}

func (s *arenaSuite) TestUpdateRecordsBid() {
	c := ctx.Background()

	id, err := s.repo.Create(c, s.newAuction("1", 1))
	s.Require().Nil(err)

	au, err := s.repo.FindOne(c, id)
	s.Require().Nil(err)
	au.HighestBid = big.NewInt(150)
	au.HighestBidder = "0xb0b0"
	s.Require().Nil(s.repo.Update(c, au))

	got, err := s.repo.FindOne(c, id)
	s.Require().Nil(err)
	s.Equal(int64(150), got.HighestBid.Int64())
	s.Equal(domain.Address("0xb0b0"), got.HighestBidder)
	s.Equal(auction.StateActive, got.State)
}
