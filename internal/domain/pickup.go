package domain

import (
	"fmt"
	"math"
	"time"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid checks the latitude/longitude ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// MaxWeightKg ограничивает вес одного вывоза. При большем весе баллы не
// помещаются в INTEGER, а вес в сотых долях кг переполняет int64.
const MaxWeightKg = 100_000

// Address is the optional free-form street address of a pickup.
type Address struct {
	Neighborhood *string `json:"neighborhood,omitempty"`
	District     *string `json:"district,omitempty"`
	City         *string `json:"city,omitempty"`
	Street       *string `json:"street,omitempty"`
	Building     *string `json:"building,omitempty"`
}

// RecyclingLocation is a drop-off point keyed by its own ID.
type RecyclingLocation struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Coordinates       Coordinates `json:"coordinates"`
	AcceptedMaterials []Material  `json:"accepted_materials"`
}

// Pickup is the off-chain record of a recycling pickup.
type Pickup struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	CourierID      *string            `json:"courier_id,omitempty"`
	Material       Material           `json:"material"`
	WeightKg       float64            `json:"weight_kg"`
	Status         PickupStatus       `json:"status"`
	PickupLocation Coordinates        `json:"pickup_location"`
	Dropoff        *RecyclingLocation `json:"dropoff_location,omitempty"`
	Address        Address            `json:"address"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// NewPickup describes a pickup to be created in pending status.
type NewPickup struct {
	ID             string
	UserID         string
	Material       Material
	WeightKg       float64
	PickupLocation Coordinates
	Address        Address
}

// Transition is a guarded status change applied by the store.
// The store applies it only while the pickup still has status From.
type Transition struct {
	PickupID  string
	From      PickupStatus
	To        PickupStatus
	CourierID *string
	DropoffID *string
}

// Validate checks the transition against the status machine and the courier invariant.
func (t Transition) Validate() error {
	if t.PickupID == "" {
		return fmt.Errorf("transition: empty pickup id")
	}
	if !t.From.CanTransitionTo(t.To) {
		return fmt.Errorf("transition %s -> %s is not allowed", t.From, t.To)
	}
	if t.To == StatusAssigned && (t.CourierID == nil || *t.CourierID == "") {
		return fmt.Errorf("transition to %s requires a courier", t.To)
	}
	return nil
}
