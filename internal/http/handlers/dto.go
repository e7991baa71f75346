package handlers

import (
	"encoding/json"
	"time"

	"ecopickup/internal/domain"
)

type createPickupRequest struct {
	UserID         string             `json:"user_id"`
	Material       domain.Material    `json:"material"`
	WeightKg       float64            `json:"weight_kg"`
	PickupLocation domain.Coordinates `json:"pickup_location"`
	Address        domain.Address     `json:"address"`
}

type assignPickupRequest struct {
	CourierID       string                    `json:"courier_id"`
	DropoffLocation *domain.RecyclingLocation `json:"dropoff_location,omitempty"`
	CourierApproval json.RawMessage           `json:"courier_approval,omitempty"`
}

type completePickupRequest struct {
	CourierApproval json.RawMessage `json:"courier_approval,omitempty"`
}

type pickupDTO struct {
	ID              string                    `json:"id"`
	UserID          string                    `json:"user_id"`
	CourierID       *string                   `json:"courier_id"`
	Material        domain.Material           `json:"material"`
	WeightKg        float64                   `json:"weight_kg"`
	Status          domain.PickupStatus       `json:"status"`
	PickupLocation  domain.Coordinates        `json:"pickup_location"`
	DropoffLocation *domain.RecyclingLocation `json:"dropoff_location,omitempty"`
	Address         domain.Address            `json:"address"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// blockchainDTO renders the reward amount as a decimal string so large values survive JSON clients.
type blockchainDTO struct {
	Enabled           bool   `json:"enabled"`
	UserRoleTx        string `json:"user_role_tx,omitempty"`
	CourierRoleTx     string `json:"courier_role_tx,omitempty"`
	PickupCreatedTx   string `json:"pickup_created_tx,omitempty"`
	PickupAcceptedTx  string `json:"pickup_accepted_tx,omitempty"`
	PickupCompletedTx string `json:"pickup_completed_tx,omitempty"`
	RewardTx          string `json:"reward_tx,omitempty"`
	RewardAmount      string `json:"reward_amount,omitempty"`
}

type assignPickupResponse struct {
	Pickup     pickupDTO     `json:"pickup"`
	Blockchain blockchainDTO `json:"blockchain"`
}

type completePickupResponse struct {
	Pickup     pickupDTO     `json:"pickup"`
	Blockchain blockchainDTO `json:"blockchain"`
	Points     int           `json:"points"`
	Carbon     carbonDTO     `json:"carbon"`
}

type carbonDTO struct {
	PickupID          string  `json:"pickup_id"`
	EstimatedSavingKg float64 `json:"estimated_saving_kg"`
}

// courierNonceResponse carries the nonce as a decimal string, like reward_amount.
type courierNonceResponse struct {
	Wallet string `json:"wallet"`
	Nonce  string `json:"nonce"`
}
