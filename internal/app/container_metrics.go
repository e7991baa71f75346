package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"ecopickup/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	LedgerReadRetriesTotal prometheus.Counter     `name:"ledger_read_retries_total"`
	LedgerSubmissionsTotal *prometheus.CounterVec `name:"ledger_submissions_total"`
	Impact                 *metrics.Impact
}

func provideMetrics() (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.LedgerReadRetriesTotal, err = register("ledger_read_retries_total", metrics.NewLedgerReadRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.LedgerSubmissionsTotal, err = register("ledger_submissions_total", metrics.NewLedgerSubmissionsTotal()); err != nil {
		return metricsOut{}, err
	}

	impact := metrics.NewImpact()
	for _, g := range []*prometheus.Gauge{&impact.Pickups, &impact.WeightKg, &impact.GreenPoints, &impact.CarbonKg} {
		if *g, err = register("impact gauge", *g); err != nil {
			return metricsOut{}, err
		}
	}
	out.Impact = impact
	return out, nil
}

// register adds c to the default registerer. An identical collector registered
// earlier (tests, a second container in one process) is returned instead.
func register[T prometheus.Collector](name string, c T) (T, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
