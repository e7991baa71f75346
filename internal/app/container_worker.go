package app

import (
	"context"

	"go.uber.org/dig"

	"ecopickup/internal/config"
	"ecopickup/internal/ledger"
	"ecopickup/internal/logx"
	"ecopickup/internal/service/commands"
	"ecopickup/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	consumerProvider := func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
		return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
	}
	return provideAll(container,
		commands.NewLifecycleProcessor,
		makeCommandHandler,
		consumerProvider,
	)
}

// makeCommandHandler marks reverted ledger calls as permanent; resubmitting them reverts again.
func makeCommandHandler(p *commands.Processor) kafka.HandleFunc {
	return func(ctx context.Context, ev commands.Event) error {
		err := p.Handle(ctx, ev)
		if ledger.IsReverted(err) {
			return kafka.Permanent(err)
		}
		return err
	}
}
