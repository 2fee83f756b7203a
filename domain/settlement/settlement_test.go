package settlement

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
)

type settlementSuite struct {
	suite.Suite
}

func TestSettlementSuite(t *testing.T) {
	suite.Run(t, new(settlementSuite))
}

func (s *settlementSuite) TestSplitSumsToGross() {
	for _, feeRate := range []domain.BasisPoints{0, 1, 250, 999, 1000} {
		for _, royaltyRate := range []domain.BasisPoints{0, 1, 500, 4999, 5000} {
			for _, gross := range []int64{1, 3, 99, 100, 12345678901} {
				g := big.NewInt(gross)
				royalty := royaltyRate.Of(g)
				fees := Split(g, feeRate, royalty)

				sum := new(big.Int).Add(fees.Seller, fees.Fee)
				sum.Add(sum, fees.Royalty)
				s.Zero(sum.Cmp(g), "fee %d royalty %d gross %d", feeRate, royaltyRate, gross)
				s.True(fees.Seller.Sign() >= 0)
			}
		}
	}
}

func (s *settlementSuite) TestSplitSellerTakesRemainder() {
	fees := Split(big.NewInt(100), 250, big.NewInt(5))
	s.Equal(int64(2), fees.Fee.Int64())
	s.Equal(int64(5), fees.Royalty.Int64())
	s.Equal(int64(93), fees.Seller.Int64())

	// truncation favors the seller, never the fee side
	fees = Split(big.NewInt(99), 250, nil)
	s.Equal(int64(2), fees.Fee.Int64())
	s.Equal(int64(97), fees.Seller.Int64())
}

func (s *settlementSuite) TestSplitCapsRoyaltyAtGross() {
	fees := Split(big.NewInt(100), 1000, big.NewInt(1000))
	s.Equal(int64(10), fees.Fee.Int64())
	s.Equal(int64(90), fees.Royalty.Int64())
	s.Equal(int64(0), fees.Seller.Int64())
}

func (s *settlementSuite) TestTxRollsBackInReverse() {
	c := ctx.Background()
	tx := Begin()
	var trace []string

	s.Nil(tx.Do(c, "first", func(ctx.Ctx) error { return nil }, func(ctx.Ctx) error {
		trace = append(trace, "undo-first")
		return nil
	}))
	s.Nil(tx.Do(c, "second", func(ctx.Ctx) error { return nil }, func(ctx.Ctx) error {
		trace = append(trace, "undo-second")
		return nil
	}))

	boom := errors.New("boom")
	err := tx.Do(c, "third", func(ctx.Ctx) error { return boom }, nil)
	s.Equal(boom, err)

	tx.Rollback(c)
	s.Equal([]string{"undo-second", "undo-first"}, trace)

	// rollback drained the undo stack
	tx.Rollback(c)
	s.Equal([]string{"undo-second", "undo-first"}, trace)
}

func (s *settlementSuite) TestTxCommitDropsUndos() {
	c := ctx.Background()
	tx := Begin()
	called := false

	s.Nil(tx.Do(c, "leg", func(ctx.Ctx) error { return nil }, func(ctx.Ctx) error {
		called = true
		return nil
	}))

	tx.Commit()
	tx.Rollback(c)
	s.False(called)
}
