package domain

import "math/big"

// CourierContext is the off-chain courier identity with its optional wallet.
type CourierContext struct {
	ID            string
	WalletAddress string
}

// CourierApproval is a courier-signed authorization forwarded to the ledger.
type CourierApproval struct {
	Signature string
	Deadline  *big.Int
}

// OnChainActionResult collects the ledger outcome of one lifecycle call.
// A tx field is set only when that call produced a new submission.
type OnChainActionResult struct {
	Enabled           bool     `json:"enabled"`
	UserRoleTx        string   `json:"user_role_tx,omitempty"`
	CourierRoleTx     string   `json:"courier_role_tx,omitempty"`
	PickupCreatedTx   string   `json:"pickup_created_tx,omitempty"`
	PickupAcceptedTx  string   `json:"pickup_accepted_tx,omitempty"`
	PickupCompletedTx string   `json:"pickup_completed_tx,omitempty"`
	RewardTx          string   `json:"reward_tx,omitempty"`
	RewardAmount      *big.Int `json:"reward_amount,omitempty"`
}

// CarbonReport is the per-pickup carbon estimate. One row per pickup.
type CarbonReport struct {
	PickupID          string  `json:"pickup_id"`
	EstimatedSavingKg float64 `json:"estimated_saving_kg"`
}

// AssignResult is returned by the assign operation.
type AssignResult struct {
	Pickup     Pickup              `json:"pickup"`
	Blockchain OnChainActionResult `json:"blockchain"`
}

// CompleteResult is returned by the complete operation.
type CompleteResult struct {
	Pickup     Pickup              `json:"pickup"`
	Blockchain OnChainActionResult `json:"blockchain"`
	Points     int                 `json:"points"`
	Carbon     CarbonReport        `json:"carbon"`
}

// ImpactSummary aggregates completed pickups.
type ImpactSummary struct {
	Pickups     int
	TotalWeight float64
	TotalPoints int
	TotalCarbon float64
}
