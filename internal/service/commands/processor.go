// Package commands applies lifecycle commands consumed from Kafka.
package commands

import (
	"context"
	"errors"

	"ecopickup/internal/apperr"
	"ecopickup/internal/logx"
	"ecopickup/internal/service/lifecycle"
)

// Processor dispatches lifecycle commands to the orchestrator.
//
// Commands rejected by the orchestrator (invalid input, unknown pickup,
// unmet preconditions, lost transition race) are logged and acknowledged.
// Ledger and store failures are returned so the message is redelivered;
// every ledger write reads first, so a redelivery does not submit twice.
type Processor struct {
	lifecycle LifecyclePort
	logger    logx.Logger
	factory   *actionFactory
}

// NewProcessor creates a Processor.
func NewProcessor(lc LifecyclePort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{lifecycle: lc, logger: logger}
	p.factory = newActionFactory(p.onAssign, p.onComplete)
	return p
}

// NewLifecycleProcessor wires the lifecycle Service into a Processor.
func NewLifecycleProcessor(svc *lifecycle.Service, logger logx.Logger) *Processor {
	return NewProcessor(svc, logger)
}

// Handle processes a single Event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Action)
	if !ok {
		p.logger.Debug("unknown pickup command skipped",
			logx.String("pickup_id", e.PickupID),
			logx.String("action", e.Action),
		)
		return nil
	}
	return p.settle(e, fn(ctx, e))
}

func (p *Processor) onAssign(ctx context.Context, e Event) error {
	_, err := p.lifecycle.Assign(ctx, lifecycle.AssignRequest{
		PickupID:  e.PickupID,
		CourierID: e.CourierID,
		Dropoff:   e.Dropoff,
		Approval:  e.Approval,
	})
	return err
}

func (p *Processor) onComplete(ctx context.Context, e Event) error {
	_, err := p.lifecycle.Complete(ctx, lifecycle.CompleteRequest{
		PickupID: e.PickupID,
		Approval: e.Approval,
	})
	return err
}

func (p *Processor) settle(e Event, err error) error {
	if err == nil {
		return nil
	}
	if rejected(err) {
		p.logger.Warn("pickup command rejected",
			logx.String("event", "pickup_command_rejected"),
			logx.String("pickup_id", e.PickupID),
			logx.String("action", e.Action),
			logx.Err(err),
		)
		return nil
	}
	return err
}

func rejected(err error) bool {
	return errors.Is(err, apperr.ErrInvalid) ||
		errors.Is(err, apperr.ErrNotFound) ||
		errors.Is(err, apperr.ErrPrecondition) ||
		errors.Is(err, apperr.ErrConflict)
}
