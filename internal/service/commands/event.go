package commands

import (
	"time"

	"ecopickup/internal/domain"
)

// Supported command actions.
const (
	ActionAssign   = "assign"
	ActionComplete = "complete"
)

// Event is a single lifecycle command received from the message bus.
type Event struct {
	PickupID  string
	Action    string
	CourierID string
	Dropoff   *domain.RecyclingLocation
	Approval  *domain.CourierApproval
	CreatedAt time.Time
}
