package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"

	"ecopickup/internal/config"
	"ecopickup/internal/logx"
)

// Dial подключается к RPC и собирает Client, который владеет соединением.
// Чтения идут через RetryingBackend, retries может быть nil.
func Dial(
	ctx context.Context,
	cfg config.Ledger,
	logger logx.Logger,
	submissions *prometheus.CounterVec,
	retries prometheus.Counter,
) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.RPCURL)
	if endpoint == "" {
		return nil, errors.New("ledger: rpc url required")
	}
	manager, err := NormalizeAddress(cfg.PickupManagerAddress)
	if err != nil {
		return nil, fmt.Errorf("ledger: pickup manager address: %w", err)
	}
	reward, err := NormalizeAddress(cfg.GreenRewardAddress)
	if err != nil {
		return nil, fmt.Errorf("ledger: green reward address: %w", err)
	}

	ec, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("ledger: dial %s: %w", endpoint, err)
	}

	backend := NewRetryingBackend(ec, logger, retries, RetryConfig{
		MaxAttempts: cfg.ReadRetries,
		BaseDelay:   cfg.RetryBaseDelay,
		MaxDelay:    cfg.RetryMaxDelay,
	})

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		if chainID, err = backend.ChainID(ctx); err != nil {
			ec.Close()
			return nil, fmt.Errorf("ledger: read chain id: %w", err)
		}
	}
	signer, err := NewSigner(cfg.PrivateKey, chainID)
	if err != nil {
		ec.Close()
		return nil, err
	}

	client, err := NewClient(backend, signer, Config{
		PickupManager:  manager,
		GreenReward:    reward,
		ConfirmTimeout: cfg.ConfirmTimeout,
		PollInterval:   cfg.PollInterval,
	}, logger, submissions)
	if err != nil {
		ec.Close()
		return nil, err
	}
	client.closeFn = ec.Close

	logger.Info("ledger connected",
		logx.String("rpc", endpoint),
		logx.String("chain_id", chainID.String()),
		logx.String("signer", signer.Address().Hex()),
		logx.String("pickup_manager", manager.Hex()),
		logx.String("green_reward", reward.Hex()),
	)
	return client, nil
}
