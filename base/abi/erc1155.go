package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ERC1155TokenABI abi.ABI

var erc1155ABI = `[
	{"type":"function","name":"supportsInterface","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"bytes4","name":"interfaceID"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"balanceOf","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"_owner"},{"type":"uint256","name":"_id"}],"outputs":[{"type":"uint256"}]},
	{"type":"function","name":"isApprovedForAll","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"_owner"},{"type":"address","name":"_operator"}],"outputs":[{"type":"bool"}]},
	{"type":"function","name":"safeTransferFrom","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"address","name":"_from"},{"type":"address","name":"_to"},{"type":"uint256","name":"_id"},{"type":"uint256","name":"_value"},{"type":"bytes","name":"_data"}],"outputs":[]}
]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc1155ABI))
	if err != nil {
		panic("Failed to parse erc1155 abi")
	}
	ERC1155TokenABI = _abi
}
