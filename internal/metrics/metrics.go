package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"ecopickup/internal/domain"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewLedgerReadRetriesTotal returns a Prometheus counter for retried ledger RPC reads
func NewLedgerReadRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_read_retries_total",
		Help: "Total number of retry attempts performed on ledger RPC reads",
	})
}

// NewLedgerSubmissionsTotal returns a counter of ledger write calls by contract method and outcome.
func NewLedgerSubmissionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_submissions_total",
			Help: "Ledger write calls by action and outcome (skipped, confirmed, pending, duplicate, failed, reverted)",
		},
		[]string{"action", "outcome"},
	)
}

// Impact holds the gauges describing completed pickups.
type Impact struct {
	Pickups     prometheus.Gauge
	WeightKg    prometheus.Gauge
	GreenPoints prometheus.Gauge
	CarbonKg    prometheus.Gauge
}

// NewImpact creates the completed-pickup gauges.
func NewImpact() *Impact {
	return &Impact{
		Pickups: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pickups_completed_total",
			Help: "Number of completed pickups",
		}),
		WeightKg: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pickups_completed_weight_kg",
			Help: "Total weight of completed pickups in kilograms",
		}),
		GreenPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "green_points_awarded_total",
			Help: "Green points awarded for completed pickups",
		}),
		CarbonKg: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "carbon_saved_kg",
			Help: "Estimated kilograms of CO2 saved by completed pickups",
		}),
	}
}

// Collectors returns the gauges for registration.
func (m *Impact) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Pickups, m.WeightKg, m.GreenPoints, m.CarbonKg}
}

// Set publishes an impact summary.
func (m *Impact) Set(s domain.ImpactSummary) {
	m.Pickups.Set(float64(s.Pickups))
	m.WeightKg.Set(s.TotalWeight)
	m.GreenPoints.Set(float64(s.TotalPoints))
	m.CarbonKg.Set(s.TotalCarbon)
}
