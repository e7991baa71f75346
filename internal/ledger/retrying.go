package ledger

import (
	"context"
	"errors"
	"io"
	"math/big"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"ecopickup/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingBackend
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingBackend повторяет идемпотентные чтения при временных ошибках транспорта.
// Отправка и опрос receipt проходят насквозь.
type RetryingBackend struct {
	next    Backend
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingBackend конструктор который проверяет, что next не nil и возвращает RetryingBackend
func NewRetryingBackend(next Backend, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingBackend {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingBackend{next: next, logger: logger, retries: retries, cfg: cfg}
}

// CallContract повторяет чтения контракта
func (b *RetryingBackend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return retry(ctx, b, "CallContract", func() ([]byte, error) {
		return b.next.CallContract(ctx, call, blockNumber)
	})
}

// PendingNonceAt повторяет чтение nonce
func (b *RetryingBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return retry(ctx, b, "PendingNonceAt", func() (uint64, error) {
		return b.next.PendingNonceAt(ctx, account)
	})
}

// SuggestGasPrice повторяет чтение цены газа
func (b *RetryingBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return retry(ctx, b, "SuggestGasPrice", func() (*big.Int, error) {
		return b.next.SuggestGasPrice(ctx)
	})
}

// EstimateGas повторяет оценку газа, revert не повторяется
func (b *RetryingBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return retry(ctx, b, "EstimateGas", func() (uint64, error) {
		return b.next.EstimateGas(ctx, call)
	})
}

// ChainID повторяет чтение chain id
func (b *RetryingBackend) ChainID(ctx context.Context) (*big.Int, error) {
	return retry(ctx, b, "ChainID", func() (*big.Int, error) {
		return b.next.ChainID(ctx)
	})
}

// SendTransaction здесь не повторяется
func (b *RetryingBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return b.next.SendTransaction(ctx, tx)
}

// TransactionReceipt опрашивает Client, здесь не повторяется
func (b *RetryingBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return b.next.TransactionReceipt(ctx, txHash)
}

func retry[T any](ctx context.Context, b *RetryingBackend, method string, call func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= b.cfg.MaxAttempts; attempt++ {
		v, err := call()
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == b.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(b.cfg.BaseDelay, b.cfg.MaxDelay, attempt)
		if b.retries != nil {
			b.retries.Inc()
		}
		b.logger.Warn("ledger read retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

// isRetryable проверяет, что ошибка временная
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d <= 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
