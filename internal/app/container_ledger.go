package app

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"ecopickup/internal/config"
	"ecopickup/internal/ledger"
	"ecopickup/internal/logx"
	"ecopickup/internal/service/lifecycle"
	"ecopickup/internal/syncpolicy"
)

// ledgerDialFunc connects to the chain. The returned client owns the RPC connection.
type ledgerDialFunc func(ctx context.Context, cfg config.Ledger, logger logx.Logger, m ledgerMetrics) (*ledger.Client, error)

type ledgerMetrics struct {
	dig.In

	Submissions *prometheus.CounterVec `name:"ledger_submissions_total"`
	ReadRetries prometheus.Counter     `name:"ledger_read_retries_total"`
}

func dialLedger(ctx context.Context, cfg config.Ledger, logger logx.Logger, m ledgerMetrics) (*ledger.Client, error) {
	return ledger.Dial(ctx, cfg, logger, m.Submissions, m.ReadRetries)
}

func registerLedger(container *dig.Container, dial ledgerDialFunc) error {
	clientProvider := func(
		ctx context.Context,
		cfg *config.Config,
		policy syncpolicy.Policy,
		logger logx.Logger,
		m ledgerMetrics,
	) (*ledger.Client, error) {
		if !policy.Active() {
			logger.Warn("ledger sync disabled: configuration missing",
				logx.String("event", "ledger_sync_inactive"),
				logx.String("missing", strings.Join(policy.Missing(), ",")),
			)
			return nil, nil
		}
		return dial(ctx, cfg.Ledger, logger, m)
	}
	return provideAll(container,
		func(cfg *config.Config) syncpolicy.Policy { return syncpolicy.New(cfg.Ledger) },
		clientProvider,
		asLifecycleLedger,
	)
}

// asLifecycleLedger keeps a disabled client a nil interface, not a typed nil.
func asLifecycleLedger(c *ledger.Client) lifecycle.Ledger {
	if c == nil {
		return nil
	}
	return c
}
