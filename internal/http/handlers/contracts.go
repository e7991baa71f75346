//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=handlers

package handlers

import (
	"context"

	"ecopickup/internal/domain"
	"ecopickup/internal/service/lifecycle"
	"ecopickup/internal/service/pickup"
)

type pickupUsecase interface {
	Create(ctx context.Context, p domain.NewPickup) (*domain.Pickup, error)
	Get(ctx context.Context, id string) (*domain.Pickup, error)
	List(ctx context.Context, status *domain.PickupStatus, limit, offset *int) ([]domain.Pickup, error)
}

// NewPickupUsecase wires a pickup Service into a pickupUsecase.
func NewPickupUsecase(svc *pickup.Service) pickupUsecase {
	return svc
}

type lifecycleUsecase interface {
	Assign(ctx context.Context, req lifecycle.AssignRequest) (domain.AssignResult, error)
	Complete(ctx context.Context, req lifecycle.CompleteRequest) (domain.CompleteResult, error)
	CourierNonce(ctx context.Context, wallet string) (lifecycle.WalletNonce, error)
}

// NewLifecycleUsecase wires the lifecycle orchestrator into a lifecycleUsecase.
func NewLifecycleUsecase(svc *lifecycle.Service) lifecycleUsecase {
	return svc
}
