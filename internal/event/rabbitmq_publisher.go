package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "debt-ledger"

var ErrPublisherClosed = errors.New("event publisher is closed")

type EventPublisher interface {
	PublishCustomerEvent(ctx context.Context, event CustomerEvent) error
	PublishDebtEvent(ctx context.Context, event DebtEvent) error
}

// amqpChannel is the part of *amqp.Channel the publisher needs.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQEventPublisher sends ledger events to a durable topic exchange over a
// single channel. amqp channels are not safe for concurrent publishing, so
// every publish holds mu.
type RabbitMQEventPublisher struct {
	mu       sync.Mutex
	channel  amqpChannel
	exchange string
	closed   bool
	now      func() time.Time
	logger   *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publishing channel: %w", err)
	}
	p, err := newPublisher(ch, exchange, logger)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newPublisher(ch amqpChannel, exchange string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if exchange == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}
	logger.Info("Ledger event exchange ready", "exchange", exchange, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		channel:  ch,
		exchange: exchange,
		now:      time.Now,
		logger:   logger.With("component", "RabbitMQEventPublisher", "exchange", exchange),
	}, nil
}

func (p *RabbitMQEventPublisher) PublishCustomerEvent(ctx context.Context, event CustomerEvent) error {
	return p.publish(ctx, event.RoutingKey(), event.OwnerID, event)
}

func (p *RabbitMQEventPublisher) PublishDebtEvent(ctx context.Context, event DebtEvent) error {
	return p.publish(ctx, event.RoutingKey(), event.OwnerID, event)
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey, ownerID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now(),
		Type:         routingKey,
		AppId:        publisherAppID,
		Headers:      amqp.Table{"owner_id": ownerID},
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish ledger event", "routingKey", routingKey, "error", err)
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	p.logger.DebugContext(ctx, "Published ledger event", "routingKey", routingKey, "messageId", msg.MessageId, "bodySize", len(body))
	return nil
}

// Close releases the channel. Publishing afterwards returns ErrPublisherClosed.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.channel.Close()
}
