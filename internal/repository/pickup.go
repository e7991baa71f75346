package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecopickup/internal/apperr"
	"ecopickup/internal/domain"
	"ecopickup/internal/ports/pickuptx"
)

const selectPickup = `
    SELECT p.id, p.user_id, p.courier_id, p.material, p.weight_kg, p.status,
           p.pickup_latitude, p.pickup_longitude,
           p.neighborhood, p.district, p.city, p.street, p.building,
           p.created_at, p.updated_at,
           rl.id, rl.name, rl.latitude, rl.longitude, rl.accepted_materials
    FROM pickups p
    LEFT JOIN recycling_locations rl ON rl.id = p.dropoff_location`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PickupRepo represents pickup repository.
type PickupRepo struct {
	db *pgxpool.Pool
}

// NewPickupRepo creates a new PickupRepo.
func NewPickupRepo(db *pgxpool.Pool) *PickupRepo {
	return &PickupRepo{db: db}
}

// Create inserts a pending pickup, creating the owning user row if needed.
func (r *PickupRepo) Create(ctx context.Context, p domain.NewPickup) (*domain.Pickup, error) {
	var created *domain.Pickup
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if err := ensureUser(ctx, tx, p.UserID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO pickups (id, user_id, material, weight_kg, pickup_latitude, pickup_longitude,
                                 neighborhood, district, city, street, building)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.ID, p.UserID, p.Material, p.WeightKg, p.PickupLocation.Latitude, p.PickupLocation.Longitude,
			p.Address.Neighborhood, p.Address.District, p.Address.City, p.Address.Street, p.Address.Building,
		)
		if err != nil {
			if IsDuplicate(err) {
				return apperr.ErrConflict
			}
			return fmt.Errorf("insert pickup %s: %w", p.ID, err)
		}
		created, err = getPickup(ctx, tx, p.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns pickup by its ID, or nil when it does not exist.
func (r *PickupRepo) Get(ctx context.Context, id string) (*domain.Pickup, error) {
	return getPickup(ctx, r.db, id, false)
}

// List returns pickups newest first, optionally filtered by status.
// If limit/offset are nil, returns the full list.
func (r *PickupRepo) List(ctx context.Context, status *domain.PickupStatus, limit, offset *int) ([]domain.Pickup, error) {
	q := selectPickup
	args := make([]any, 0, 3)
	if status != nil {
		args = append(args, *status)
		q += fmt.Sprintf(" WHERE p.status = $%d", len(args))
	}
	q += " ORDER BY p.created_at DESC, p.id"
	if limit != nil {
		args = append(args, *limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset != nil {
		args = append(args, *offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return listPickups(ctx, r.db, q, args...)
}

// ListCompleted returns completed pickups, most recently updated first.
func (r *PickupRepo) ListCompleted(ctx context.Context) ([]domain.Pickup, error) {
	return listPickups(ctx, r.db, selectPickup+` WHERE p.status = 'completed' ORDER BY p.updated_at DESC`)
}

// WithTx opens a transaction and executes fn within it.
func (r *PickupRepo) WithTx(ctx context.Context, fn func(tx pickuptx.Repository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(&TxRepo{tx: tx})
	})
}

func (r *PickupRepo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// Get returns the pickup locked for update.
func (r *TxRepo) Get(ctx context.Context, id string) (*domain.Pickup, error) {
	return getPickup(ctx, r.tx, id, true)
}

// ApplyTransition performs a compare-and-set on the pickup status.
func (r *TxRepo) ApplyTransition(ctx context.Context, t domain.Transition) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalid, err)
	}
	ct, err := r.tx.Exec(ctx, `
        UPDATE pickups
        SET status           = $3,
            courier_id       = COALESCE($4, courier_id),
            dropoff_location = COALESCE($5, dropoff_location),
            updated_at       = now()
        WHERE id = $1 AND status = $2`,
		t.PickupID, t.From, t.To, t.CourierID, t.DropoffID,
	)
	if err != nil {
		return fmt.Errorf("transition pickup %s %s->%s: %w", t.PickupID, t.From, t.To, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: pickup %s is no longer %s", apperr.ErrConflict, t.PickupID, t.From)
	}
	return nil
}

// UpsertDropoff inserts or refreshes a recycling location keyed by its ID.
func (r *TxRepo) UpsertDropoff(ctx context.Context, loc domain.RecyclingLocation) error {
	materials := make([]string, 0, len(loc.AcceptedMaterials))
	for _, m := range loc.AcceptedMaterials {
		materials = append(materials, string(m))
	}
	_, err := r.tx.Exec(ctx, `
        INSERT INTO recycling_locations (id, name, latitude, longitude, accepted_materials)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE SET
            name               = EXCLUDED.name,
            latitude           = EXCLUDED.latitude,
            longitude          = EXCLUDED.longitude,
            accepted_materials = EXCLUDED.accepted_materials`,
		loc.ID, loc.Name, loc.Coordinates.Latitude, loc.Coordinates.Longitude, materials,
	)
	if err != nil {
		return fmt.Errorf("upsert recycling location %s: %w", loc.ID, err)
	}
	return nil
}

// UpsertCarbonReport keeps one carbon report per pickup.
func (r *TxRepo) UpsertCarbonReport(ctx context.Context, rep domain.CarbonReport) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO carbon_reports (pickup_id, estimated_saving_kg)
        VALUES ($1, $2)
        ON CONFLICT (pickup_id) DO UPDATE SET
            estimated_saving_kg = EXCLUDED.estimated_saving_kg,
            generated_at        = now()`,
		rep.PickupID, rep.EstimatedSavingKg,
	)
	if err != nil {
		return fmt.Errorf("upsert carbon report %s: %w", rep.PickupID, err)
	}
	return nil
}

// CreditPoints adds points to the user's green point balance.
func (r *TxRepo) CreditPoints(ctx context.Context, userID string, points int) error {
	if err := ensureUser(ctx, r.tx, userID); err != nil {
		return err
	}
	_, err := r.tx.Exec(ctx, `UPDATE users SET green_points = green_points + $2 WHERE id = $1`, userID, points)
	if err != nil {
		return fmt.Errorf("credit %d points to user %s: %w", points, userID, err)
	}
	return nil
}

func ensureUser(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("ensure user %s: %w", userID, err)
	}
	return nil
}

func getPickup(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Pickup, error) {
	sql := selectPickup + ` WHERE p.id = $1`
	if forUpdate {
		sql += ` FOR UPDATE OF p`
	}
	p, err := scanPickup(q.QueryRow(ctx, sql, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pickup %s: %w", id, err)
	}
	return p, nil
}

func listPickups(ctx context.Context, q querier, sql string, args ...any) ([]domain.Pickup, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list pickups: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Pickup, 0)
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pickup: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPickup(row pgx.Row) (*domain.Pickup, error) {
	var (
		p         domain.Pickup
		createdAt time.Time
		updatedAt time.Time
		dropID    *string
		dropName  *string
		dropLat   *float64
		dropLon   *float64
		dropMats  []string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.CourierID, &p.Material, &p.WeightKg, &p.Status,
		&p.PickupLocation.Latitude, &p.PickupLocation.Longitude,
		&p.Address.Neighborhood, &p.Address.District, &p.Address.City, &p.Address.Street, &p.Address.Building,
		&createdAt, &updatedAt,
		&dropID, &dropName, &dropLat, &dropLon, &dropMats,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()

	if dropID != nil && dropName != nil && dropLat != nil && dropLon != nil {
		loc := &domain.RecyclingLocation{
			ID:                *dropID,
			Name:              *dropName,
			Coordinates:       domain.Coordinates{Latitude: *dropLat, Longitude: *dropLon},
			AcceptedMaterials: make([]domain.Material, 0, len(dropMats)),
		}
		for _, m := range dropMats {
			loc.AcceptedMaterials = append(loc.AcceptedMaterials, domain.Material(m))
		}
		p.Dropoff = loc
	}
	return &p, nil
}
