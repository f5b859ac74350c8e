package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// CrossDomainAdminABI holds the admin functions the hub pool may call on the spoke pool over
// the cross domain message bridge.
var CrossDomainAdminABI, _ = abi.JSON(strings.NewReader(`
[
  {
    "inputs": [{"internalType": "bool", "name": "pause", "type": "bool"}],
    "name": "pauseDeposits",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "bool", "name": "pause", "type": "bool"}],
    "name": "pauseFills",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "address", "name": "newCrossDomainAdmin", "type": "address"}],
    "name": "setCrossDomainAdmin",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "originToken", "type": "bytes32"},
      {"internalType": "uint64", "name": "destinationChainId", "type": "uint64"},
      {"internalType": "bool", "name": "enabled", "type": "bool"}
    ],
    "name": "setEnableRoute",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "bytes32", "name": "relayerRefundRoot", "type": "bytes32"},
      {"internalType": "bytes32", "name": "slowRelayRoot", "type": "bytes32"}
    ],
    "name": "relayRootBundle",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "rootBundleId", "type": "uint256"}],
    "name": "emergencyDeleteRootBundle",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`))
