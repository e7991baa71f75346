package lifecycle

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"ecopickup/internal/domain"
	"ecopickup/internal/ledger"
	"ecopickup/internal/ports/pickuptx"
)

// Store читает вывозы и выполняет защищенные переходы в транзакции
type Store interface {
	pickuptx.Runner
	Get(ctx context.Context, id string) (*domain.Pickup, error)
}

// Directory отдает адреса кошельков пользователей и курьеров.
// Если записи нет, оба метода возвращают нулевые значения.
type Directory interface {
	UserWallet(ctx context.Context, userID string) (string, error)
	Courier(ctx context.Context, courierID string) (*domain.CourierContext, error)
}

// Ledger подмножество *ledger.Client, которое нужно оркестратору
type Ledger interface {
	PickupStatus(ctx context.Context, pickupID string) (ledger.OnChainPickup, error)
	AssignRole(ctx context.Context, addr common.Address, role ledger.Role) (ledger.Submission, error)
	EnsurePickupExists(ctx context.Context, p domain.Pickup) (ledger.Submission, error)
	AcceptPickup(ctx context.Context, pickupID string, courier common.Address, approval *domain.CourierApproval) (ledger.Submission, error)
	CompletePickup(ctx context.Context, pickupID string, courier common.Address, approval *domain.CourierApproval) (ledger.Submission, error)
	MintReward(ctx context.Context, user common.Address, material domain.Material, weightKg float64) (ledger.Mint, error)
	NonceOf(ctx context.Context, addr common.Address) (*big.Int, error)
}

// AssignRequest входные данные назначения курьера
type AssignRequest struct {
	PickupID  string
	CourierID string
	Dropoff   *domain.RecyclingLocation
	Approval  *domain.CourierApproval
}

// CompleteRequest входные данные завершения
type CompleteRequest struct {
	PickupID string
	Approval *domain.CourierApproval
}

// WalletNonce nonce мета-транзакций, под который курьер подписывает разрешения
type WalletNonce struct {
	Wallet string
	Nonce  *big.Int
}
