package service

import (
	"context"
	"iter"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Quantity    int32
}

type ProductPatch struct {
	Name        *string
	Category    *string
	Description *string
}

type ProductListFilter struct {
	Query       string
	Category    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	OnlyInStock bool
	Limit       int
	Offset      int
}

type CreateOrderInput struct {
	CustomerID int64
	OrderDate  time.Time
}

type OrderListFilter struct {
	CustomerID *int64
	Status     *models.OrderStatus
	Limit      int
	Offset     int
}

type AddLineItemInput struct {
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice *decimal.Decimal // nil — снапшот текущей цены каталога
}

type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID int64, patch ProductPatch) (*models.Product, error)
	UpdatePrice(ctx context.Context, productID int64, newPrice decimal.Decimal) (*models.Product, error)
	AdjustQuantity(ctx context.Context, productID int64, delta int32) (*models.Product, error)
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	DeleteProduct(ctx context.Context, productID int64) error
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	Transition(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

type LineItemService interface {
	AddLineItem(ctx context.Context, in AddLineItemInput) (*models.OrderDetail, error)
	RemoveLineItem(ctx context.Context, orderDetailID int64) error
	ListLineItems(ctx context.Context, orderID int64) (iter.Seq2[models.OrderDetail, error], error)
}

func toRepoProductFilter(f ProductListFilter) repository.ProductListFilter {
	return repository.ProductListFilter{
		Query:       f.Query,
		Category:    f.Category,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
		OnlyInStock: f.OnlyInStock,
		Limit:       f.Limit,
		Offset:      f.Offset,
	}
}
