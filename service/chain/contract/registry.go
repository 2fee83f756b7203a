package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/nifty-xyz/goapi/base/abi"
	bCtx "github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/domain"
	"github.com/nifty-xyz/goapi/domain/registry"
	"github.com/nifty-xyz/goapi/service/chain"
)

// Registry implements the asset registry over on-chain token contracts,
// one instance per chain. Reads go through eth_call; Transfer submits a
// signed transaction from the escrow agent key.
type Registry struct {
	chainId      int32
	chainService chain.Client
	erc721       ethabi.ABI
	erc1155      ethabi.ABI
	royalty      ethabi.ABI
}

func NewRegistry(chainId int32, chainService chain.Client) registry.AssetRegistry {
	return &Registry{
		chainId:      chainId,
		chainService: chainService,
		erc721:       baseabi.ERC721TokenABI,
		erc1155:      baseabi.ERC1155TokenABI,
		royalty:      baseabi.RoyaltyInfoABI,
	}
}

func (r *Registry) OwnerOf(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", err
	}
	unpacked, err := r.chainService.Call(ctx, r.chainId, common.HexToAddress(string(collection)), nil, r.erc721, "ownerOf", id)
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).String()).ToLower(), nil
}

func (r *Registry) BalanceOf(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, owner domain.Address) (*big.Int, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return nil, err
	}
	unpacked, err := r.chainService.Call(ctx, r.chainId, common.HexToAddress(string(collection)), nil, r.erc1155, "balanceOf", common.HexToAddress(string(owner)), id)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (r *Registry) IsApproved(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, operator domain.Address) (bool, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return false, err
	}
	unpacked, err := r.chainService.Call(ctx, r.chainId, common.HexToAddress(string(collection)), nil, r.erc721, "getApproved", id)
	if err != nil {
		return false, err
	}
	approved := domain.Address(unpacked[0].(common.Address).String())
	return approved.Equals(operator), nil
}

func (r *Registry) IsApprovedForAll(ctx bCtx.Ctx, collection domain.Address, owner, operator domain.Address) (bool, error) {
	// same surface on both token standards
	unpacked, err := r.chainService.Call(ctx, r.chainId, common.HexToAddress(string(collection)), nil, r.erc721, "isApprovedForAll", common.HexToAddress(string(owner)), common.HexToAddress(string(operator)))
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (r *Registry) Transfer(ctx bCtx.Ctx, asset domain.AssetRef, quantity int64, from, to domain.Address) error {
	id, err := asset.TokenId.ToBigInt()
	if err != nil {
		return err
	}
	addr := common.HexToAddress(string(asset.Collection))
	if asset.TokenType == domain.TokenType1155 {
		return r.chainService.Send(ctx, r.chainId, addr, r.erc1155, "safeTransferFrom",
			common.HexToAddress(string(from)), common.HexToAddress(string(to)), id, big.NewInt(quantity), []byte{})
	}
	return r.chainService.Send(ctx, r.chainId, addr, r.erc721, "safeTransferFrom",
		common.HexToAddress(string(from)), common.HexToAddress(string(to)), id)
}

func (r *Registry) SupportsCapability(ctx bCtx.Ctx, collection domain.Address, capability [4]byte) (bool, error) {
	unpacked, err := r.chainService.Call(ctx, r.chainId, common.HexToAddress(string(collection)), nil, r.erc721, "supportsInterface", capability)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (r *Registry) RoyaltyInfo(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, salePrice *big.Int) (domain.Address, *big.Int, error) {
	id, err := tokenId.ToBigInt()
	if err != nil {
		return "", nil, err
	}
	unpacked, err := r.chainService.Call(ctx, r.chainId, common.HexToAddress(string(collection)), nil, r.royalty, "royaltyInfo", id, salePrice)
	if err != nil {
		return "", nil, err
	}
	receiver := domain.Address(unpacked[0].(common.Address).String()).ToLower()
	return receiver, unpacked[1].(*big.Int), nil
}
