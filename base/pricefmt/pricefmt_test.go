package pricefmt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDisplay(t *testing.T) {
	one := new(big.Int)
	one.SetString("1000000000000000000", 10)
	require.Equal(t, "1", ToDisplay(one))

	half := new(big.Int)
	half.SetString("1500000000000000000", 10)
	require.Equal(t, "1.5", ToDisplay(half))

	require.Equal(t, "0", ToDisplay(nil))
	require.Equal(t, "0.000000000000000001", ToDisplay(big.NewInt(1)))
}

func TestFromDisplay(t *testing.T) {
	v, err := FromDisplay("1.5")
	require.NoError(t, err)

	want := new(big.Int)
	want.SetString("1500000000000000000", 10)
	require.Zero(t, v.Cmp(want))

	_, err = FromDisplay("not-a-number")
	require.Error(t, err)
}
