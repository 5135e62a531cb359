package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"store-service/internal/service"

	"github.com/segmentio/kafka-go"
)

// OrderEventsProducer публикует события магазина в один топик,
// ключ — id заказа, чтобы события заказа попадали в одну партицию.
type OrderEventsProducer struct {
	writer *kafka.Writer
}

func NewOrderEventsProducer(brokers []string, topic string) *OrderEventsProducer {
	return &OrderEventsProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (p *OrderEventsProducer) publish(ctx context.Context, orderID int64, eventType string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	value, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(orderID, 10)),
		Value: value,
	})
}

func (p *OrderEventsProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return p.publish(ctx, e.OrderID, "order.created", e)
}

func (p *OrderEventsProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return p.publish(ctx, e.OrderID, "order.status_changed", e)
}

func (p *OrderEventsProducer) PublishLineItemAdded(ctx context.Context, e service.LineItemAddedEvent) error {
	return p.publish(ctx, e.OrderID, "order.line_item_added", e)
}

func (p *OrderEventsProducer) PublishLineItemRemoved(ctx context.Context, e service.LineItemRemovedEvent) error {
	return p.publish(ctx, e.OrderID, "order.line_item_removed", e)
}

func (p *OrderEventsProducer) Close() error {
	return p.writer.Close()
}
