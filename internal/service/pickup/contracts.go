package pickup

import (
	"context"

	"ecopickup/internal/domain"
)

// pickupRepository defines storage operations required by the pickup service.
type pickupRepository interface {
	Create(ctx context.Context, p domain.NewPickup) (*domain.Pickup, error)
	Get(ctx context.Context, id string) (*domain.Pickup, error)
	List(ctx context.Context, status *domain.PickupStatus, limit, offset *int) ([]domain.Pickup, error)
}
