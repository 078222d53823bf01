package event

import (
	"context"
	"log/slog"
)

// NoopEventPublisher is used when RabbitMQ is disabled.
type NoopEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NoopEventPublisher)(nil)

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopEventPublisher{logger: logger.With("component", "NoopEventPublisher")}
}

func (p *NoopEventPublisher) PublishCustomerEvent(ctx context.Context, event CustomerEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, publisher disabled", slog.String("routingKey", event.RoutingKey()))
	return nil
}

func (p *NoopEventPublisher) PublishDebtEvent(ctx context.Context, event DebtEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, publisher disabled", slog.String("routingKey", event.RoutingKey()))
	return nil
}
