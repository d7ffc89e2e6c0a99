// Package kafka consumes payment gateway notifications and turns them into
// payment confirmation commands.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

// PaymentCompletedEvent is the wire format the payment gateway publishes
// when a payment settles.
type PaymentCompletedEvent struct {
	OrderID        string    `json:"orderId"`
	TransactionRef string    `json:"transactionRef"`
	PaidAt         time.Time `json:"paidAt"`
}

// PaymentConsumer reads payment-completed events and confirms the paid
// orders. Events arrive at least once; a duplicate confirmation is rejected
// by the aggregate and logged, not retried.
type PaymentConsumer struct {
	reader  *kafka.Reader
	handler commands.ConfirmPaymentCommandHandler
	logger  *slog.Logger
}

// NewPaymentConsumer creates a consumer for the payment gateway topic.
func NewPaymentConsumer(
	brokers []string,
	topic string,
	groupID string,
	handler commands.ConfirmPaymentCommandHandler,
	logger *slog.Logger,
) *PaymentConsumer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	return &PaymentConsumer{
		reader:  reader,
		handler: handler,
		logger:  logger.With("component", "payment_consumer"),
	}
}

// Consume reads events until the context is cancelled. Malformed or failing
// events are logged and skipped so one poison message cannot stall the topic.
func (c *PaymentConsumer) Consume(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("failed to read payment event", "error", err)
			continue
		}

		if err = c.process(ctx, msg.Value); err != nil {
			c.logger.Error("failed to process payment event",
				"key", string(msg.Key), "error", err)
		}
	}
}

func (c *PaymentConsumer) process(ctx context.Context, value []byte) error {
	var event PaymentCompletedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPaymentCommand(orderID, event.TransactionRef, event.PaidAt)
	if err != nil {
		return err
	}

	return c.handler.Handle(ctx, cmd)
}

// Close releases the underlying Kafka reader.
func (c *PaymentConsumer) Close() error {
	return c.reader.Close()
}
