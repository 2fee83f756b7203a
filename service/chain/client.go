package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/log"
)

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrTxReverted       = errors.New("transaction reverted")
	ErrNoSigner         = errors.New("no signing key configured")
)

type ClientCfg struct {
	RpcUrls map[int32]string

	// SigningKey is the escrow agent key used for Send. Optional; a client
	// without it is read only.
	SigningKey *ecdsa.PrivateKey
}

type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)

	// Send packs, signs and submits a state-changing call and waits for the
	// receipt. A reverted transaction surfaces as ErrTxReverted.
	Send(bCtx.Ctx, int32, common.Address, abi.ABI, string, ...interface{}) error

	// Sender returns the address of the signing key.
	Sender() (common.Address, error)
}

type clientImpl struct {
	clients map[int32]*ethclient.Client
	key     *ecdsa.PrivateKey
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}
	return &clientImpl{
		clients: clients,
		key:     cfg.SigningKey,
	}, anyerr
}

func (c *clientImpl) Sender() (common.Address, error) {
	if c.key == nil {
		return common.Address{}, ErrNoSigner
	}
	return crypto.PubkeyToAddress(c.key.PublicKey), nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Send(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) error {
	client, ok := c.clients[chainId]
	if !ok {
		return ErrUnsupportedChain
	}
	if c.key == nil {
		return ErrNoSigner
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Pack failed")
		return err
	}

	from := crypto.PubkeyToAddress(c.key.PublicKey)
	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return err
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &addr, Data: data})
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return err
	}

	netChainId, err := client.ChainID(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.ChainID failed")
		return err
	}
	tx, err := types.SignNewTx(c.key, types.LatestSignerForChainID(netChainId), &types.LegacyTx{
		Nonce:    nonce,
		To:       &addr,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		ctx.WithField("err", err).Error("types.SignNewTx failed")
		return err
	}
	if err := client.SendTransaction(ctx, tx); err != nil {
		ctx.WithField("err", err).Error("client.SendTransaction failed")
		return err
	}

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		ctx.WithField("err", err).Error("bind.WaitMined failed")
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		ctx.WithField("tx", tx.Hash().Hex()).Error("transaction reverted")
		return ErrTxReverted
	}
	return nil
}
