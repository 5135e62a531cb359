package service

import (
	"context"
	"time"

	"store-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	OrderDate  time.Time `json:"order_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	EventID   uuid.UUID          `json:"event_id"`
	OrderID   int64              `json:"order_id"`
	OldStatus models.OrderStatus `json:"old_status"`
	NewStatus models.OrderStatus `json:"new_status"`
	ChangedAt time.Time          `json:"changed_at"`
}

type LineItemAddedEvent struct {
	EventID   uuid.UUID       `json:"event_id"`
	DetailID  int64           `json:"detail_id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	AddedAt   time.Time       `json:"added_at"`
}

type LineItemRemovedEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	DetailID  int64     `json:"detail_id"`
	OrderID   int64     `json:"order_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int32     `json:"quantity"` // возвращено на склад
	RemovedAt time.Time `json:"removed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
	PublishLineItemAdded(ctx context.Context, e LineItemAddedEvent) error
	PublishLineItemRemoved(ctx context.Context, e LineItemRemovedEvent) error
}
