// Package pickup creates and reads pickup records.
package pickup

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecopickup/internal/apperr"
	"ecopickup/internal/domain"
	"ecopickup/internal/logx"
)

// Service coordinates pickup creation and lookups.
type Service struct {
	repo             pickupRepository
	operationTimeout time.Duration
	logger           logx.Logger
	newID            func() string
}

// NewService creates and configures a pickup Service.
func NewService(r pickupRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(p *domain.NewPickup) error {
	p.UserID = strings.TrimSpace(p.UserID)
	if p.UserID == "" {
		return apperr.ErrInvalid
	}
	if !p.Material.Valid() {
		return apperr.ErrInvalid
	}
	if p.WeightKg < 0 || p.WeightKg > domain.MaxWeightKg || math.IsNaN(p.WeightKg) || math.IsInf(p.WeightKg, 0) {
		return apperr.ErrInvalid
	}
	if !p.PickupLocation.Valid() {
		return apperr.ErrInvalid
	}
	return nil
}

// Create stores a new pending pickup under a fresh ID.
func (s *Service) Create(ctx context.Context, p domain.NewPickup) (*domain.Pickup, error) {
	if err := validateCreate(&p); err != nil {
		return nil, err
	}
	p.ID = s.newID()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("pickup created",
		logx.String("event", "pickup_created"),
		logx.String("pickup_id", created.ID),
		logx.String("user_id", created.UserID),
		logx.String("material", string(created.Material)),
	)
	return created, nil
}

// Get retrieves a pickup by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Pickup, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// List returns pickups with optional status filter and pagination.
func (s *Service) List(ctx context.Context, status *domain.PickupStatus, limit, offset *int) ([]domain.Pickup, error) {
	if status != nil && !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, status, limit, offset)
}
