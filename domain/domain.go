package domain

import (
	"fmt"
	"math/big"
	"strings"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// TokenType distinguishes the two asset accounting models the engine
// custodies: one-of-one items (721) and fungible-within-id multi unit
// items (1155).
type TokenType int

const (
	TokenType721  TokenType = 721
	TokenType1155 TokenType = 1155
)

func (t TokenType) Valid() bool {
	return t == TokenType721 || t == TokenType1155
}

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id %s", i)
	}
	return id, nil
}

// BasisPoints is a rate in units of 1/10000.
type BasisPoints int64

const (
	BpsDenominator BasisPoints = 10000

	// MaxRoyaltyBps caps royalty rates at 50% of the sale price.
	MaxRoyaltyBps BasisPoints = 5000

	// MaxPlatformFeeBps caps the platform fee at 10%.
	MaxPlatformFeeBps BasisPoints = 1000
)

func (b BasisPoints) Valid() bool {
	return b >= 0 && b <= BpsDenominator
}

// Of returns amount*b/10000, truncated toward zero.
func (b BasisPoints) Of(amount *big.Int) *big.Int {
	v := new(big.Int).Mul(amount, big.NewInt(int64(b)))
	return v.Div(v, big.NewInt(int64(BpsDenominator)))
}

// MustParseAmount parses a base-10 raw amount, panicking on malformed
// input. Only for wiring values out of configuration.
func MustParseAmount(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("malformed amount: " + s)
	}
	return v
}

// AssetRef identifies one sellable asset: a collection handle, a token id
// within it, and which accounting model the collection follows.
type AssetRef struct {
	Collection Address   `json:"collection" bson:"collection"`
	TokenId    TokenId   `json:"tokenId" bson:"tokenId"`
	TokenType  TokenType `json:"tokenType" bson:"tokenType"`
}

func (a AssetRef) LowerCase() AssetRef {
	a.Collection = a.Collection.ToLower()
	return a
}

func (a AssetRef) Key() string {
	return fmt.Sprintf("%s:%s", a.Collection.ToLowerStr(), a.TokenId)
}
