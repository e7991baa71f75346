package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"ecopickup/internal/domain"
)

// DirectoryRepo reads users and couriers owned by other services.
type DirectoryRepo struct{ db *pgxpool.Pool }

// NewDirectoryRepo creates a new DirectoryRepo.
func NewDirectoryRepo(db *pgxpool.Pool) *DirectoryRepo { return &DirectoryRepo{db: db} }

// UserWallet returns the wallet address of a user. Missing users and empty
// wallets both yield "".
func (r *DirectoryRepo) UserWallet(ctx context.Context, userID string) (string, error) {
	var wallet *string
	err := r.db.QueryRow(ctx, `SELECT wallet_address FROM users WHERE id = $1`, userID).Scan(&wallet)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get user %s wallet: %w", userID, err)
	}
	return trimmed(wallet), nil
}

// Courier returns the courier with the wallet of its user account, or nil when absent.
func (r *DirectoryRepo) Courier(ctx context.Context, courierID string) (*domain.CourierContext, error) {
	var (
		c      domain.CourierContext
		wallet *string
	)
	err := r.db.QueryRow(ctx, `
        SELECT c.id, u.wallet_address
        FROM couriers c
        LEFT JOIN users u ON u.id = c.user_id
        WHERE c.id = $1`, courierID,
	).Scan(&c.ID, &wallet)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %s: %w", courierID, err)
	}
	c.WalletAddress = trimmed(wallet)
	return &c, nil
}

// GreenPoints returns the point balance of a user.
func (r *DirectoryRepo) GreenPoints(ctx context.Context, userID string) (int, error) {
	var points int
	err := r.db.QueryRow(ctx, `SELECT green_points FROM users WHERE id = $1`, userID).Scan(&points)
	if err != nil {
		if IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get user %s points: %w", userID, err)
	}
	return points, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
