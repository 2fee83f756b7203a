package settlement

import (
	"math/big"

	"github.com/nifty-xyz/goapi/domain"
)

// Fees is the exact three-way division of one gross sale amount.
// Seller + Fee + Royalty always equals the gross; integer division
// truncates on the fee and royalty side and the seller takes the
// remainder, so no dust is ever lost.
type Fees struct {
	Seller  *big.Int
	Fee     *big.Int
	Royalty *big.Int
}

// Split divides gross between seller, platform fee and royalty.
// royaltyAmount is an absolute amount (already resolved against the sale
// price); it is capped so fee+royalty never exceeds the gross.
func Split(gross *big.Int, feeRate domain.BasisPoints, royaltyAmount *big.Int) Fees {
	fee := feeRate.Of(gross)

	royalty := new(big.Int)
	if royaltyAmount != nil {
		royalty.Set(royaltyAmount)
	}
	if royalty.Sign() < 0 {
		royalty.SetInt64(0)
	}
	rest := new(big.Int).Sub(gross, fee)
	if royalty.Cmp(rest) > 0 {
		royalty.Set(rest)
	}

	seller := new(big.Int).Sub(rest, royalty)
	return Fees{Seller: seller, Fee: fee, Royalty: royalty}
}
