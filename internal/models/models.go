package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статус заказа — строковый тип, значения совпадают с CHECK в БД
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusCancelled OrderStatus = "Cancelled"
	OrderStatusCompleted OrderStatus = "Completed"
)

// Разрешённые рёбра: Pending→{Shipped,Cancelled}, Shipped→{Completed,Cancelled}.
// Completed и Cancelled — терминальные.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped: {OrderStatusCompleted, OrderStatusCancelled},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCancelled, OrderStatusCompleted:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:text;not null"`
	Category    string          `gorm:"type:text;not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int32           `gorm:"type:int;not null;default:0"` // CHECK >= 0 в миграции

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement"`
	CustomerID int64       `gorm:"not null;index"` // внешняя сущность, локально не валидируется
	OrderDate  time.Time   `gorm:"not null"`
	Status     OrderStatus `gorm:"type:text;not null;default:'Pending';index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Details []OrderDetail `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// TotalAmount — сумма Quantity*UnitPrice по загруженным позициям.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range o.Details {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}
	return total
}

type OrderDetail struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	Quantity  int32           `gorm:"type:int;not null"`          // CHECK > 0 в миграции
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"` // снапшот цены на момент продажи

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderDetail) TableName() string { return "order_details" }
