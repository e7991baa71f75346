package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"ecopickup/internal/apperr"
	"ecopickup/internal/ledger"
	"ecopickup/internal/logx"
)

// CourierNonce читает nonce кошелька, под который курьер подписывает
// acceptPickupWithSig и completePickupWithSig. Без синхронизации с
// леджером подписывать нечего, поэтому возвращается ErrPrecondition.
func (s *Service) CourierNonce(ctx context.Context, wallet string) (WalletNonce, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return WalletNonce{}, fmt.Errorf("%w: wallet is required", apperr.ErrInvalid)
	}
	addr, err := ledger.NormalizeAddress(wallet)
	if err != nil {
		return WalletNonce{}, err
	}
	if !s.policy.Active() {
		return WalletNonce{}, fmt.Errorf("%w: ledger sync is disabled", apperr.ErrPrecondition)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.ledger.NonceOf(ctx, addr)
	if err != nil {
		s.logger.Warn("courier nonce read failed",
			logx.String("wallet", addr.Hex()),
			logx.Err(err),
		)
		return WalletNonce{}, err
	}
	return WalletNonce{Wallet: addr.Hex(), Nonce: n}, nil
}
