package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingKeys(t *testing.T) {
	assert.Equal(t, "customer.created", CustomerEvent{Action: ActionCreated}.RoutingKey())
	assert.Equal(t, "customer.deleted", CustomerEvent{Action: ActionDeleted}.RoutingKey())
	assert.Equal(t, "debt.updated", DebtEvent{Action: ActionUpdated}.RoutingKey())
}

func TestDebtEvent_JSONShape(t *testing.T) {
	e := DebtEvent{
		Action:    ActionCreated,
		OwnerID:   "u1",
		Timestamp: time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC),
		Payload:   DebtPayload{DebtID: "d1", CustomerID: "c1", Value: "99.9", Status: "Pendente"},
	}

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "created", decoded["action"])
	assert.Equal(t, "u1", decoded["ownerId"])
	payload := decoded["payload"].(map[string]any)
	assert.Equal(t, "99.9", payload["value"])
	assert.Equal(t, "Pendente", payload["status"])
}

func TestNewRabbitMQEventPublisher_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewRabbitMQEventPublisher(nil, "debt-ledger", logger)
	assert.EqualError(t, err, "RabbitMQ connection cannot be nil")
}

func TestNoopEventPublisher(t *testing.T) {
	p := NewNoopEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, p.PublishCustomerEvent(context.Background(), CustomerEvent{Action: ActionCreated}))
	assert.NoError(t, p.PublishDebtEvent(context.Background(), DebtEvent{Action: ActionDeleted}))
}

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitMQEventPublisher_Publish(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ch := &fakeChannel{}

	p, err := newPublisher(ch, "ledger.events", logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"ledger.events:topic"}, ch.declared)

	require.NoError(t, p.PublishDebtEvent(context.Background(), DebtEvent{
		Action:  ActionCreated,
		OwnerID: "u1",
		Payload: DebtPayload{DebtID: "d1", CustomerID: "c1"},
	}))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, []string{"ledger.events/debt.created"}, ch.keys)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "debt.created", msg.Type)
	assert.Equal(t, "u1", msg.Headers["owner_id"])
	assert.NotEmpty(t, msg.MessageId)
	assert.Contains(t, string(msg.Body), `"debtId":"d1"`)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.ErrorIs(t, p.PublishCustomerEvent(context.Background(), CustomerEvent{Action: ActionDeleted}), ErrPublisherClosed)
}

func TestRabbitMQEventPublisher_PublishError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ch := &fakeChannel{publishErr: errors.New("channel closed")}

	p, err := newPublisher(ch, "ledger.events", logger)
	require.NoError(t, err)

	err = p.PublishCustomerEvent(context.Background(), CustomerEvent{Action: ActionUpdated})
	assert.ErrorContains(t, err, "failed to publish customer.updated")
}

func TestNewPublisher_EmptyExchange(t *testing.T) {
	_, err := newPublisher(&fakeChannel{}, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.EqualError(t, err, "RabbitMQ exchange name cannot be empty")
}
