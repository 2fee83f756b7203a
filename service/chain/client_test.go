package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/nifty-xyz/goapi/base/ctx"
)

func TestReadOnlyClientWithoutSigningKey(t *testing.T) {
	c, err := NewClient(ctx.Background(), &ClientCfg{})
	require.NoError(t, err)

	_, err = c.Sender()
	require.Equal(t, ErrNoSigner, err)
}

func TestSenderFromSigningKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	c, err := NewClient(ctx.Background(), &ClientCfg{SigningKey: key})
	require.NoError(t, err)

	sender, err := c.Sender()
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), sender)
}
