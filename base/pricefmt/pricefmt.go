package pricefmt

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// PayTokenDecimals is the denomination of all engine amounts.
const PayTokenDecimals = 18

// ToDisplay renders a raw integer amount as a human decimal string,
// e.g. 1500000000000000000 -> "1.5".
func ToDisplay(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -PayTokenDecimals).String()
}

// FromDisplay parses a human decimal string back into a raw integer
// amount, truncating anything below one base unit.
func FromDisplay(display string) (*big.Int, error) {
	d, err := decimal.NewFromString(display)
	if err != nil {
		return nil, err
	}
	return d.Shift(PayTokenDecimals).BigInt(), nil
}
