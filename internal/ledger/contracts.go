package ledger

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const pickupManagerABI = `[
  {"type":"function","name":"assignRole","stateMutability":"nonpayable",
   "inputs":[{"name":"user","type":"address"},{"name":"role","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"createPickup","stateMutability":"nonpayable",
   "inputs":[{"name":"pickupId","type":"string"},{"name":"material","type":"string"},{"name":"weightKg","type":"uint256"}],
   "outputs":[{"name":"","type":"bytes32"}]},
  {"type":"function","name":"acceptPickup","stateMutability":"nonpayable",
   "inputs":[{"name":"pickupId","type":"string"}],"outputs":[]},
  {"type":"function","name":"completePickup","stateMutability":"nonpayable",
   "inputs":[{"name":"pickupId","type":"string"}],"outputs":[]},
  {"type":"function","name":"acceptPickupWithSig","stateMutability":"nonpayable",
   "inputs":[{"name":"pickupId","type":"string"},{"name":"courier","type":"address"},{"name":"deadline","type":"uint256"},
             {"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"completePickupWithSig","stateMutability":"nonpayable",
   "inputs":[{"name":"pickupId","type":"string"},{"name":"courier","type":"address"},{"name":"deadline","type":"uint256"},
             {"name":"v","type":"uint8"},{"name":"r","type":"bytes32"},{"name":"s","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"pickups","stateMutability":"view",
   "inputs":[{"name":"id","type":"bytes32"}],
   "outputs":[{"name":"pickupId","type":"string"},{"name":"user","type":"address"},{"name":"courier","type":"address"},
              {"name":"status","type":"uint8"},{"name":"material","type":"string"},{"name":"weightKg","type":"uint256"},
              {"name":"createdAt","type":"uint256"},{"name":"assignedAt","type":"uint256"},{"name":"completedAt","type":"uint256"}]},
  {"type":"function","name":"userRoles","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"nonces","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const greenRewardABI = `[
  {"type":"function","name":"recordActivity","stateMutability":"nonpayable",
   "inputs":[{"name":"user","type":"address"},{"name":"material","type":"string"},{"name":"weightKg","type":"uint256"}],
   "outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"materialWeights","stateMutability":"view",
   "inputs":[{"name":"material","type":"string"}],"outputs":[{"name":"","type":"uint8"}]}
]`

// Contract method names.
const (
	methodAssignRole            = "assignRole"
	methodCreatePickup          = "createPickup"
	methodAcceptPickup          = "acceptPickup"
	methodCompletePickup        = "completePickup"
	methodAcceptPickupWithSig   = "acceptPickupWithSig"
	methodCompletePickupWithSig = "completePickupWithSig"
	methodPickups               = "pickups"
	methodUserRoles             = "userRoles"
	methodNonces                = "nonces"
	methodRecordActivity        = "recordActivity"
	methodMaterialWeights       = "materialWeights"
)

// Parsed ABIs are immutable and shared by every Client.
var (
	PickupManagerABI = mustParseABI(pickupManagerABI)
	GreenRewardABI   = mustParseABI(greenRewardABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("ledger: bad contract abi: " + err.Error())
	}
	return parsed
}
