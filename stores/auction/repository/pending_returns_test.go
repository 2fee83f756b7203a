package repository

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/auction"
)

type pendingReturnsSuite struct {
	suite.Suite

	repo auction.PendingReturnsRepo
}

func TestPendingReturnsSuite(t *testing.T) {
	suite.Run(t, new(pendingReturnsSuite))
}

func (s *pendingReturnsSuite) SetupTest() {
	s.repo = NewPendingReturns()
}

func (s *pendingReturnsSuite) TestCreditsAccumulate() {
	c := ctx.Background()

	s.Nil(s.repo.Credit(c, "0xAAAA", big.NewInt(100)))
	s.Nil(s.repo.Credit(c, "0xaaaa", big.NewInt(50)))

	owed, err := s.repo.Get(c, "0xaaaa")
	s.Nil(err)
	s.Equal(int64(150), owed.Int64())
}

func (s *pendingReturnsSuite) TestCreditRejectsNonPositive() {
	c := ctx.Background()

	s.Equal(domain.ErrInvalidPrice, s.repo.Credit(c, "0xaaaa", nil))
	s.Equal(domain.ErrInvalidPrice, s.repo.Credit(c, "0xaaaa", big.NewInt(0)))
	s.Equal(domain.ErrInvalidPrice, s.repo.Credit(c, "0xaaaa", big.NewInt(-5)))
}

func (s *pendingReturnsSuite) TestTakeZeroesBeforeReturning() {
	c := ctx.Background()

	s.Require().Nil(s.repo.Credit(c, "0xaaaa", big.NewInt(100)))

	owed, err := s.repo.Take(c, "0xaaaa")
	s.Nil(err)
	s.Equal(int64(100), owed.Int64())

	_, err = s.repo.Take(c, "0xaaaa")
	s.Equal(domain.ErrNoPendingReturns, err)

	rest, err := s.repo.Get(c, "0xaaaa")
	s.Nil(err)
	s.Equal(int64(0), rest.Int64())
}

func (s *pendingReturnsSuite) TestTakeWithoutBalance() {
	c := ctx.Background()

	_, err := s.repo.Take(c, "0xbbbb")
	s.Equal(domain.ErrNoPendingReturns, err)
}

func (s *pendingReturnsSuite) TestGetReturnsCopy() {
	c := ctx.Background()

	s.Require().Nil(s.repo.Credit(c, "0xaaaa", big.NewInt(100)))

	owed, err := s.repo.Get(c, "0xaaaa")
	s.Require().Nil(err)
	owed.SetInt64(999)

	again, err := s.repo.Get(c, "0xaaaa")
	s.Nil(err)
	s.Equal(int64(100), again.Int64())
}
