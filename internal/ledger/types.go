package ledger

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Role повторяет enum ролей PickupManager
type Role uint8

// Список on-chain ролей
const (
	RoleNone Role = iota
	RoleUser
	RoleCourier
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleUser:
		return "user"
	case RoleCourier:
		return "courier"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Status повторяет enum статусов вывоза PickupManager
type Status uint8

// Список on-chain статусов
const (
	StatusPending Status = iota
	StatusAssigned
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAssigned:
		return "assigned"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// OnChainPickup вывоз глазами леджера
type OnChainPickup struct {
	Exists bool
	Status Status
}

// SubmissionKind показывает, чем закончилась запись
type SubmissionKind int

// Список исходов отправки
const (
	// SubmissionSkipped состояние уже выполнено, ничего не отправлено
	SubmissionSkipped SubmissionKind = iota
	// SubmissionConfirmed транзакция смайнена успешно
	SubmissionConfirmed
	// SubmissionPending транзакция отправлена, но не смайнена за таймаут подтверждения
	SubmissionPending
	// SubmissionDuplicate узел уже знает такую же транзакцию
	SubmissionDuplicate
)

func (k SubmissionKind) String() string {
	switch k {
	case SubmissionSkipped:
		return "skipped"
	case SubmissionConfirmed:
		return "confirmed"
	case SubmissionPending:
		return "pending"
	case SubmissionDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Submission результат записи. TxRef пустой, если отправка пропущена.
type Submission struct {
	Kind  SubmissionKind
	TxRef string
}

// Sent проверяет, что вызов породил транзакцию
func (s Submission) Sent() bool {
	return s.Kind != SubmissionSkipped
}

// Mint результат начисления награды
type Mint struct {
	Submission
	Amount *big.Int
}

// ErrorKind классифицирует ошибки леджера
type ErrorKind int

// Список видов ошибок
const (
	// KindFailure ошибки транспорта и отклоненные отправки
	KindFailure ErrorKind = iota
	// KindReverted транзакция смайнена с неуспешным статусом
	KindReverted
)

// Error жесткая ошибка леджера. Дубликаты отправки никогда не возвращаются как Error.
type Error struct {
	Kind  ErrorKind
	Op    string
	TxRef string
	Err   error
}

func (e *Error) Error() string {
	msg := "ledger " + e.Op
	if e.Kind == KindReverted {
		msg += ": reverted"
	}
	if e.TxRef != "" {
		msg += " tx=" + e.TxRef
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsFailure проверяет, что err содержит ошибку леджера
func IsFailure(err error) bool {
	var le *Error
	return errors.As(err, &le)
}

// IsReverted проверяет, что err содержит смайненную, но откаченную транзакцию.
// Повторная отправка того же вызова снова откатится.
func IsReverted(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == KindReverted
}

func failure(op string, err error) error {
	return &Error{Kind: KindFailure, Op: op, Err: err}
}

// PickupKey on-chain ключ вывоза, keccak256 от UTF-8 id
func PickupKey(id string) common.Hash {
	return crypto.Keccak256Hash([]byte(id))
}

// WeightUnits переводит килограммы в сотые доли кг, как ждет контракт
func WeightUnits(kg float64) *big.Int {
	return big.NewInt(int64(math.Round(kg * 100)))
}
