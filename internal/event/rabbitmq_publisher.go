package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	publisherAppID = "customers-api"

	headerCustomerID = "customerId"
	headerEventType  = "eventType"
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type channelOpener func() (amqpChannel, error)

// RabbitMQEventPublisher sends customer lifecycle events to a durable topic
// exchange, one short lived channel per event.
type RabbitMQEventPublisher struct {
	openChannel  channelOpener
	exchangeName string
	logger       *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	return newRabbitMQEventPublisher(func() (amqpChannel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}, exchangeName, logger)
}

func newRabbitMQEventPublisher(open channelOpener, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	ch, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel for exchange declaration: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		openChannel:  open,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}, nil
}

func isCustomerRoutingKey(key string) bool {
	switch key {
	case RoutingKeyCustomerCreated, RoutingKeyCustomerUpdated, RoutingKeyCustomerDeleted:
		return true
	}
	return false
}

// PublishCustomerEvent routes evt by its type. The customer id and event
// type are copied into headers so consumers can filter without decoding.
func (p *RabbitMQEventPublisher) PublishCustomerEvent(ctx context.Context, evt CustomerEvent) error {
	if !isCustomerRoutingKey(evt.Type) {
		return fmt.Errorf("unknown customer event type %q", evt.Type)
	}
	logCtx := p.logger.With(
		slog.String("routingKey", evt.Type),
		slog.String("customerID", evt.Payload.CustomerID),
	)

	body, err := json.Marshal(evt)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal customer event", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel, err := p.openChannel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    evt.Timestamp,
		Type:         evt.Type,
		MessageId:    uuid.NewString(),
		AppId:        publisherAppID,
		Headers: amqp.Table{
			headerCustomerID: evt.Payload.CustomerID,
			headerEventType:  evt.Type,
		},
		Body: body,
	}
	if err := channel.PublishWithContext(ctx, p.exchangeName, evt.Type, false, false, msg); err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish customer event", slog.Any("error", err))
		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}

	logCtx.InfoContext(ctx, "Published customer event", slog.String("messageID", msg.MessageId))
	return nil
}

// Dial opens the broker connection described by url.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}
