package pickuptx

import (
	"context"

	"ecopickup/internal/domain"
)

// Repository is the pickup store as seen inside a transaction.
type Repository interface {
	// Get returns the pickup locked for update, or nil when it does not exist.
	Get(ctx context.Context, id string) (*domain.Pickup, error)
	// ApplyTransition changes status only while the pickup still has t.From.
	// It returns apperr.ErrConflict when the guard does not match.
	ApplyTransition(ctx context.Context, t domain.Transition) error
	UpsertDropoff(ctx context.Context, loc domain.RecyclingLocation) error
	UpsertCarbonReport(ctx context.Context, r domain.CarbonReport) error
	// CreditPoints adds points to the user balance, creating the user row if needed.
	CreditPoints(ctx context.Context, userID string, points int) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
