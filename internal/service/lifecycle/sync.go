package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"ecopickup/internal/apperr"
	"ecopickup/internal/domain"
	"ecopickup/internal/ledger"
	"ecopickup/internal/logx"
)

// wallets нормализованные адреса для шага синхронизации.
// courierKnown false, если у курьера нет кошелька.
type wallets struct {
	user         common.Address
	courier      common.Address
	courierKnown bool
}

func (s *Service) assignWallets(ctx context.Context, p domain.Pickup, courier domain.CourierContext, approval *domain.CourierApproval) (wallets, error) {
	user, err := s.userWallet(ctx, p.UserID)
	if err != nil {
		return wallets{}, err
	}
	if strings.TrimSpace(courier.WalletAddress) == "" {
		return wallets{}, fmt.Errorf("%w: courier %s has no wallet address", apperr.ErrPrecondition, courier.ID)
	}
	courierAddr, err := normalize("courier", courier.WalletAddress)
	if err != nil {
		return wallets{}, err
	}
	if approval == nil {
		return wallets{}, fmt.Errorf("%w: courier approval is required", apperr.ErrPrecondition)
	}
	return wallets{user: user, courier: courierAddr, courierKnown: true}, nil
}

func (s *Service) completeWallets(ctx context.Context, p domain.Pickup, approval *domain.CourierApproval) (wallets, error) {
	user, err := s.userWallet(ctx, p.UserID)
	if err != nil {
		return wallets{}, err
	}
	w := wallets{user: user}
	if p.CourierID == nil {
		return w, nil
	}
	courier, err := s.dir.Courier(ctx, *p.CourierID)
	if err != nil {
		return wallets{}, fmt.Errorf("lookup courier %s: %w", *p.CourierID, err)
	}
	if courier == nil || strings.TrimSpace(courier.WalletAddress) == "" {
		return w, nil
	}
	if w.courier, err = normalize("courier", courier.WalletAddress); err != nil {
		return wallets{}, err
	}
	w.courierKnown = true
	if approval == nil {
		return wallets{}, fmt.Errorf("%w: courier approval is required", apperr.ErrPrecondition)
	}
	return w, nil
}

func (s *Service) userWallet(ctx context.Context, userID string) (common.Address, error) {
	raw, err := s.dir.UserWallet(ctx, userID)
	if err != nil {
		return common.Address{}, fmt.Errorf("lookup wallet of user %s: %w", userID, err)
	}
	if strings.TrimSpace(raw) == "" {
		return common.Address{}, fmt.Errorf("%w: user %s has no wallet address", apperr.ErrPrecondition, userID)
	}
	return normalize("user", raw)
}

func normalize(owner, raw string) (common.Address, error) {
	addr, err := ledger.NormalizeAddress(raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %s wallet: %w", apperr.ErrPrecondition, owner, err)
	}
	return addr, nil
}

// syncAssign доводит леджер до состояния "вывоз принят курьером"
func (s *Service) syncAssign(ctx context.Context, p domain.Pickup, w wallets, approval *domain.CourierApproval) (domain.OnChainActionResult, error) {
	res := domain.OnChainActionResult{Enabled: true}

	sub, err := s.ledger.AssignRole(ctx, w.courier, ledger.RoleCourier)
	if err != nil {
		return res, err
	}
	res.CourierRoleTx = txRef(sub)

	sub, err = s.ledger.AssignRole(ctx, w.user, ledger.RoleUser)
	if err != nil {
		return res, err
	}
	res.UserRoleTx = txRef(sub)

	st, err := s.ensureOnChain(ctx, p, &res)
	if err != nil {
		return res, err
	}

	switch st.Status {
	case ledger.StatusAssigned, ledger.StatusCompleted:
		s.logger.Debug("ledger acceptance already satisfied",
			logx.String("pickup_id", p.ID),
			logx.String("ledger_status", st.Status.String()),
		)
	case ledger.StatusCancelled:
		return res, fmt.Errorf("%w: pickup %s is cancelled on the ledger", apperr.ErrPrecondition, p.ID)
	default:
		sub, err = s.ledger.AcceptPickup(ctx, p.ID, w.courier, approval)
		if err != nil {
			return res, err
		}
		res.PickupAcceptedTx = txRef(sub)
	}
	return res, nil
}

// syncComplete доводит леджер до Completed и начисляет награду.
// Начисление выполняется на каждом вызове, дошедшем до него.
func (s *Service) syncComplete(ctx context.Context, p domain.Pickup, w wallets, approval *domain.CourierApproval) (domain.OnChainActionResult, error) {
	res := domain.OnChainActionResult{Enabled: true}

	sub, err := s.ledger.AssignRole(ctx, w.user, ledger.RoleUser)
	if err != nil {
		return res, err
	}
	res.UserRoleTx = txRef(sub)

	st, err := s.ensureOnChain(ctx, p, &res)
	if err != nil {
		return res, err
	}

	if w.courierKnown {
		sub, err = s.ledger.AssignRole(ctx, w.courier, ledger.RoleCourier)
		if err != nil {
			return res, err
		}
		res.CourierRoleTx = txRef(sub)
	}

	switch st.Status {
	case ledger.StatusPending:
		return res, fmt.Errorf("%w: pickup %s is not accepted on the ledger", apperr.ErrPrecondition, p.ID)
	case ledger.StatusCancelled:
		return res, fmt.Errorf("%w: pickup %s is cancelled on the ledger", apperr.ErrPrecondition, p.ID)
	case ledger.StatusCompleted:
		s.logger.Warn("minting reward for a pickup already completed on the ledger",
			logx.String("event", "reward_mint_after_satisfied_completion"),
			logx.String("pickup_id", p.ID),
			logx.String("user_id", p.UserID),
		)
	default:
		var courier common.Address
		var ap *domain.CourierApproval
		if w.courierKnown {
			courier, ap = w.courier, approval
		}
		sub, err = s.ledger.CompletePickup(ctx, p.ID, courier, ap)
		if err != nil {
			return res, err
		}
		res.PickupCompletedTx = txRef(sub)
	}

	mint, err := s.ledger.MintReward(ctx, w.user, p.Material, p.WeightKg)
	if err != nil {
		return res, err
	}
	res.RewardTx = txRef(mint.Submission)
	res.RewardAmount = mint.Amount
	return res, nil
}

// ensureOnChain создает двойник в леджере при необходимости и возвращает его состояние.
// Если создание вернулось pending или duplicate, двойник еще не виден и вызов
// падает с ошибкой ensurePickupExists; в базе ничего не меняется, вызов можно повторить.
func (s *Service) ensureOnChain(ctx context.Context, p domain.Pickup, res *domain.OnChainActionResult) (ledger.OnChainPickup, error) {
	sub, err := s.ledger.EnsurePickupExists(ctx, p)
	if err != nil {
		return ledger.OnChainPickup{}, err
	}
	res.PickupCreatedTx = txRef(sub)

	st, err := s.ledger.PickupStatus(ctx, p.ID)
	if err != nil {
		return ledger.OnChainPickup{}, err
	}
	if !st.Exists {
		return ledger.OnChainPickup{}, &ledger.Error{
			Kind:  ledger.KindFailure,
			Op:    "ensurePickupExists",
			TxRef: sub.TxRef,
			Err:   errors.New("pickup is not visible on the ledger yet"),
		}
	}
	return st, nil
}

func txRef(sub ledger.Submission) string {
	if !sub.Sent() {
		return ""
	}
	return sub.TxRef
}
