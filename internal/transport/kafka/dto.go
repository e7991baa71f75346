package kafka

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ecopickup/internal/apperr"
	"ecopickup/internal/approval"
	"ecopickup/internal/domain"
	"ecopickup/internal/service/commands"
)

// EventDTO is the wire form of a pickup lifecycle command.
type EventDTO struct {
	PickupID        string                    `json:"pickup_id"`
	Action          string                    `json:"action"`
	CourierID       string                    `json:"courier_id,omitempty"`
	DropoffLocation *domain.RecyclingLocation `json:"dropoff_location,omitempty"`
	CourierApproval json.RawMessage           `json:"courier_approval,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// ToDomain converts EventDTO to commands.Event, validating the approval payload.
func ToDomain(dto EventDTO) (commands.Event, error) {
	ev := commands.Event{
		PickupID:  strings.TrimSpace(dto.PickupID),
		Action:    strings.TrimSpace(dto.Action),
		CourierID: strings.TrimSpace(dto.CourierID),
		Dropoff:   dto.DropoffLocation,
		CreatedAt: dto.CreatedAt,
	}
	if ev.PickupID == "" {
		return commands.Event{}, fmt.Errorf("empty pickup_id: %w", apperr.ErrInvalid)
	}
	appr, err := approval.ParseJSON(dto.CourierApproval)
	if err != nil {
		return commands.Event{}, err
	}
	ev.Approval = appr
	return ev, nil
}
