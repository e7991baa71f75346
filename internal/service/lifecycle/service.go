// Package lifecycle ведет вывоз через назначение и завершение, держа
// запись в базе и леджер согласованными.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecopickup/internal/apperr"
	"ecopickup/internal/domain"
	"ecopickup/internal/logx"
	"ecopickup/internal/ports/pickuptx"
	"ecopickup/internal/reward"
	"ecopickup/internal/syncpolicy"
)

// Service оркестратор жизненного цикла вывоза
type Service struct {
	store            Store
	dir              Directory
	ledger           Ledger
	policy           syncpolicy.Policy
	operationTimeout time.Duration
	logger           logx.Logger
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// NewService конструктор Service. chain может быть nil, если политика синхронизации неактивна.
func NewService(store Store, dir Directory, chain Ledger, policy syncpolicy.Policy, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if policy.Active() && chain == nil {
		logger.Warn("ledger client is not configured, sync disabled", logx.String("event", "ledger_sync_disabled"))
		policy = syncpolicy.Disabled()
	}
	return &Service{
		store:            store,
		dir:              dir,
		ledger:           chain,
		policy:           policy,
		operationTimeout: timeout,
		logger:           logger,
	}
}

// SyncEnabled проверяет, ходят ли вызовы в леджер
func (s *Service) SyncEnabled() bool {
	return s.policy.Active()
}

// Assign назначает курьера на вывоз в статусе pending.
// Повтор с тем же курьером на назначенном вывозе проходит без новых отправок в леджер.
func (s *Service) Assign(ctx context.Context, req AssignRequest) (domain.AssignResult, error) {
	pickupID, err := validateID("pickup id", req.PickupID)
	if err != nil {
		return domain.AssignResult{}, err
	}
	courierID, err := validateID("courier id", req.CourierID)
	if err != nil {
		return domain.AssignResult{}, err
	}
	if req.Dropoff != nil {
		if err := validateDropoff(*req.Dropoff); err != nil {
			return domain.AssignResult{}, err
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.loadPickup(ctx, pickupID)
	if err != nil {
		return domain.AssignResult{}, err
	}

	// повтор с тем же курьером разрешен, остальное нарушает предусловие
	replay := false
	switch {
	case p.Status == domain.StatusPending:
	case p.Status == domain.StatusAssigned && p.CourierID != nil && *p.CourierID == courierID:
		replay = true
	default:
		return domain.AssignResult{}, fmt.Errorf("%w: pickup %s is %s", apperr.ErrPrecondition, p.ID, p.Status)
	}

	courier, err := s.dir.Courier(ctx, courierID)
	if err != nil {
		return domain.AssignResult{}, fmt.Errorf("lookup courier %s: %w", courierID, err)
	}
	if courier == nil {
		return domain.AssignResult{}, fmt.Errorf("%w: courier %s", apperr.ErrNotFound, courierID)
	}

	// сначала леджер, база меняется только после успешной синхронизации
	chain := domain.OnChainActionResult{Enabled: false}
	if s.policy.Active() {
		w, err := s.assignWallets(ctx, *p, *courier, req.Approval)
		if err != nil {
			return domain.AssignResult{}, err
		}
		chain, err = s.syncAssign(ctx, *p, w, req.Approval)
		if err != nil {
			return domain.AssignResult{}, err
		}
	}

	if replay {
		s.logger.Info("pickup assignment replayed",
			logx.String("event", "pickup_assign_replayed"),
			logx.String("pickup_id", p.ID),
			logx.String("courier_id", courierID),
		)
		return domain.AssignResult{Pickup: *p, Blockchain: chain}, nil
	}

	var updated *domain.Pickup
	err = s.store.WithTx(ctx, func(tx pickuptx.Repository) error {
		t := domain.Transition{
			PickupID:  p.ID,
			From:      domain.StatusPending,
			To:        domain.StatusAssigned,
			CourierID: &courierID,
		}
		if req.Dropoff != nil {
			if err := tx.UpsertDropoff(ctx, *req.Dropoff); err != nil {
				return err
			}
			t.DropoffID = &req.Dropoff.ID
		}
		if err := tx.ApplyTransition(ctx, t); err != nil {
			return err
		}
		updated, err = tx.Get(ctx, p.ID)
		return err
	})
	if err != nil {
		return domain.AssignResult{}, err
	}
	if updated == nil {
		return domain.AssignResult{}, fmt.Errorf("%w: pickup %s", apperr.ErrNotFound, p.ID)
	}

	s.logger.Info("pickup assigned",
		logx.String("event", "pickup_assigned"),
		logx.String("pickup_id", updated.ID),
		logx.String("courier_id", courierID),
		logx.Bool("ledger", chain.Enabled),
		logx.String("accept_tx", chain.PickupAcceptedTx),
	)

	return domain.AssignResult{Pickup: *updated, Blockchain: chain}, nil
}

// Complete завершает назначенный вывоз, начисляет награду в леджере и зеленые баллы
func (s *Service) Complete(ctx context.Context, req CompleteRequest) (domain.CompleteResult, error) {
	pickupID, err := validateID("pickup id", req.PickupID)
	if err != nil {
		return domain.CompleteResult{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.loadPickup(ctx, pickupID)
	if err != nil {
		return domain.CompleteResult{}, err
	}
	if p.Status != domain.StatusAssigned {
		return domain.CompleteResult{}, fmt.Errorf("%w: pickup %s is %s", apperr.ErrPrecondition, p.ID, p.Status)
	}

	chain := domain.OnChainActionResult{Enabled: false}
	if s.policy.Active() {
		w, err := s.completeWallets(ctx, *p, req.Approval)
		if err != nil {
			return domain.CompleteResult{}, err
		}
		chain, err = s.syncComplete(ctx, *p, w, req.Approval)
		if err != nil {
			return domain.CompleteResult{}, err
		}
	}

	carbon := reward.EstimateCarbonSavings(*p)
	points := reward.CalculateGreenPoints(p.Material, p.WeightKg)

	// переход, отчет по углероду и баллы в одной транзакции
	var updated *domain.Pickup
	err = s.store.WithTx(ctx, func(tx pickuptx.Repository) error {
		err := tx.ApplyTransition(ctx, domain.Transition{
			PickupID: p.ID,
			From:     domain.StatusAssigned,
			To:       domain.StatusCompleted,
		})
		if err != nil {
			return err
		}
		if err := tx.UpsertCarbonReport(ctx, carbon); err != nil {
			return err
		}
		if err := tx.CreditPoints(ctx, p.UserID, points); err != nil {
			return err
		}
		updated, err = tx.Get(ctx, p.ID)
		return err
	})
	if err != nil {
		if chain.RewardTx != "" {
			s.logger.Error("store failed after reward mint",
				logx.String("event", "pickup_complete_store_failed"),
				logx.String("pickup_id", p.ID),
				logx.String("reward_tx", chain.RewardTx),
				logx.Err(err),
			)
		}
		return domain.CompleteResult{}, err
	}
	if updated == nil {
		return domain.CompleteResult{}, fmt.Errorf("%w: pickup %s", apperr.ErrNotFound, p.ID)
	}

	s.logger.Info("pickup completed",
		logx.String("event", "pickup_completed"),
		logx.String("pickup_id", updated.ID),
		logx.String("user_id", updated.UserID),
		logx.Int("points", points),
		logx.Float64("carbon_saved_kg", carbon.EstimatedSavingKg),
		logx.Bool("ledger", chain.Enabled),
		logx.String("reward_tx", chain.RewardTx),
	)

	return domain.CompleteResult{
		Pickup:     *updated,
		Blockchain: chain,
		Points:     points,
		Carbon:     carbon,
	}, nil
}

func (s *Service) loadPickup(ctx context.Context, id string) (*domain.Pickup, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load pickup %s: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: pickup %s", apperr.ErrNotFound, id)
	}
	return p, nil
}

func validateID(name, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: %s is required", apperr.ErrInvalid, name)
	}
	return id, nil
}

func validateDropoff(loc domain.RecyclingLocation) error {
	var errs []error
	if strings.TrimSpace(loc.ID) == "" {
		errs = append(errs, errors.New("dropoff id is required"))
	}
	if !loc.Coordinates.Valid() {
		errs = append(errs, errors.New("dropoff coordinates are out of range"))
	}
	for _, m := range loc.AcceptedMaterials {
		if !m.Valid() {
			errs = append(errs, fmt.Errorf("dropoff material %q is unknown", m))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, errors.Join(errs...))
	}
	return nil
}
