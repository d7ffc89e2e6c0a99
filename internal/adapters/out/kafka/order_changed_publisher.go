// Package kafka publishes order lifecycle events to a Kafka topic and
// consumes payment notifications from the payment gateway topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

// OrderChangedEvent is the wire format of an order lifecycle notification.
// Consumers receive it at least once and must tolerate duplicates.
type OrderChangedEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	BuyerID     string    `json:"buyerId"`
	SellerID    string    `json:"sellerId"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// OrderChangedPublisher writes order lifecycle events to Kafka.
// Messages are keyed by order id so one order's events stay ordered
// within a partition.
type OrderChangedPublisher struct {
	writer *kafka.Writer
}

// NewOrderChangedPublisher creates a publisher for the given brokers and topic.
func NewOrderChangedPublisher(brokers []string, topic string) *OrderChangedPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &OrderChangedPublisher{writer: writer}
}

// Publish sends the order's current state to the topic.
func (p *OrderChangedPublisher) Publish(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := OrderChangedEvent{
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber().String(),
		BuyerID:     aggregate.BuyerID().String(),
		SellerID:    aggregate.SellerID().String(),
		Status:      aggregate.Status().String(),
		Total:       aggregate.Total(),
		OccurredAt:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.OccurredAt,
	})
}

// Close releases the underlying Kafka writer.
func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}
