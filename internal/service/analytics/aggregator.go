// Package analytics periodically recomputes impact totals over completed pickups.
package analytics

import (
	"context"
	"fmt"
	"time"

	"ecopickup/internal/domain"
	"ecopickup/internal/logx"
	"ecopickup/internal/reward"
)

type completedLister interface {
	ListCompleted(ctx context.Context) ([]domain.Pickup, error)
}

type impactSink interface {
	Set(domain.ImpactSummary)
}

// Aggregator recomputes the impact summary and publishes it to a sink.
type Aggregator struct {
	repo    completedLister
	sink    impactSink
	logger  logx.Logger
	timeout time.Duration
}

// NewAggregator creates an Aggregator. A non-positive timeout defaults to 10s.
func NewAggregator(repo completedLister, sink impactSink, timeout time.Duration, logger logx.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Aggregator{repo: repo, sink: sink, logger: logger, timeout: timeout}
}

// RunOnce reads completed pickups, aggregates them and publishes the result.
func (a *Aggregator) RunOnce(ctx context.Context) (domain.ImpactSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	pickups, err := a.repo.ListCompleted(ctx)
	if err != nil {
		return domain.ImpactSummary{}, fmt.Errorf("list completed pickups: %w", err)
	}
	s := reward.Aggregate(pickups)
	if a.sink != nil {
		a.sink.Set(s)
	}
	a.logger.Debug("impact metrics updated",
		logx.Int("pickups", s.Pickups),
		logx.Float64("weight_kg", s.TotalWeight),
		logx.Int("points", s.TotalPoints),
		logx.Float64("carbon_kg", s.TotalCarbon),
	)
	return s, nil
}

// Start runs RunOnce immediately and then on every tick until ctx is done.
func (a *Aggregator) Start(ctx context.Context, interval time.Duration) {
	go func() {
		a.tick(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.tick(ctx)
			}
		}
	}()
}

func (a *Aggregator) tick(ctx context.Context) {
	if _, err := a.RunOnce(ctx); err != nil && ctx.Err() == nil {
		a.logger.Error("impact aggregation failed", logx.Err(err))
	}
}
