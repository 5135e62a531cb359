package service_test

import (
	"context"
	"iter"

	"store-service/internal/models"
	"store-service/internal/repository"
	"store-service/internal/service"
)

// Моки для всех зависимостей сервисов

// MockProductRepo
type MockProductRepo struct {
	CreateFunc         func(ctx context.Context, p *models.Product) error
	GetByIDFunc        func(ctx context.Context, id int64) (*models.Product, error)
	UpdateFieldsFunc   func(ctx context.Context, id int64, fields map[string]any) (bool, error)
	ListFunc           func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	ListCategoriesFunc func(ctx context.Context) ([]string, error)
	DeleteFunc         func(ctx context.Context, id int64) (bool, error)
	ExistsFunc         func(ctx context.Context, id int64) (bool, error)
	AdjustQuantityFunc func(ctx context.Context, id int64, delta int32) (bool, error)
	WithTxFunc         func(ctx context.Context, fn func(tx repository.ProductRepo) error) error
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return true, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) AdjustQuantity(ctx context.Context, id int64, delta int32) (bool, error) {
	if m.AdjustQuantityFunc != nil {
		return m.AdjustQuantityFunc(ctx, id, delta)
	}
	return true, nil
}

func (m *MockProductRepo) WithTx(ctx context.Context, fn func(tx repository.ProductRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m)
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc       func(ctx context.Context, o *models.Order) error
	GetByIDFunc      func(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status models.OrderStatus) (bool, error)
	ListFunc         func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	DeleteFunc       func(ctx context.Context, id int64) (bool, error)
	ExistsFunc       func(ctx context.Context, id int64) (bool, error)
	WithTxFunc       func(ctx context.Context, fn func(txOrders repository.OrderRepo, txDetails repository.OrderDetailRepo) error) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return true, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockOrderRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(txOrders repository.OrderRepo, txDetails repository.OrderDetailRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m, &MockOrderDetailRepo{})
}

// MockOrderDetailRepo
type MockOrderDetailRepo struct {
	CreateFunc           func(ctx context.Context, d *models.OrderDetail) error
	GetByIDFunc          func(ctx context.Context, id int64) (*models.OrderDetail, error)
	GetByOrderIDFunc     func(ctx context.Context, orderID int64) ([]models.OrderDetail, error)
	DeleteFunc           func(ctx context.Context, id int64) (bool, error)
	CountByOrderIDFunc   func(ctx context.Context, orderID int64) (int64, error)
	CountByProductIDFunc func(ctx context.Context, productID int64) (int64, error)
	StreamByOrderIDFunc  func(ctx context.Context, orderID int64) iter.Seq2[models.OrderDetail, error]
	WithTxFunc           func(ctx context.Context, fn func(txDetails repository.OrderDetailRepo, txOrders repository.OrderRepo, txProducts repository.ProductRepo) error) error
}

func (m *MockOrderDetailRepo) Create(ctx context.Context, d *models.OrderDetail) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, d)
	}
	return nil
}

func (m *MockOrderDetailRepo) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderDetailRepo) GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderDetail, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderDetailRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *MockOrderDetailRepo) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	if m.CountByOrderIDFunc != nil {
		return m.CountByOrderIDFunc(ctx, orderID)
	}
	return 0, nil
}

func (m *MockOrderDetailRepo) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	if m.CountByProductIDFunc != nil {
		return m.CountByProductIDFunc(ctx, productID)
	}
	return 0, nil
}

func (m *MockOrderDetailRepo) StreamByOrderID(ctx context.Context, orderID int64) iter.Seq2[models.OrderDetail, error] {
	if m.StreamByOrderIDFunc != nil {
		return m.StreamByOrderIDFunc(ctx, orderID)
	}
	return func(yield func(models.OrderDetail, error) bool) {}
}

func (m *MockOrderDetailRepo) WithTx(ctx context.Context, fn func(txDetails repository.OrderDetailRepo, txOrders repository.OrderRepo, txProducts repository.ProductRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m, &MockOrderRepo{}, &MockProductRepo{})
}

// MockEventBus — копит опубликованные события
type MockEventBus struct {
	Created       []service.OrderCreatedEvent
	StatusChanged []service.OrderStatusChangedEvent
	ItemsAdded    []service.LineItemAddedEvent
	ItemsRemoved  []service.LineItemRemovedEvent
}

func (m *MockEventBus) PublishOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	m.Created = append(m.Created, e)
	return nil
}

func (m *MockEventBus) PublishOrderStatusChanged(_ context.Context, e service.OrderStatusChangedEvent) error {
	m.StatusChanged = append(m.StatusChanged, e)
	return nil
}

func (m *MockEventBus) PublishLineItemAdded(_ context.Context, e service.LineItemAddedEvent) error {
	m.ItemsAdded = append(m.ItemsAdded, e)
	return nil
}

func (m *MockEventBus) PublishLineItemRemoved(_ context.Context, e service.LineItemRemovedEvent) error {
	m.ItemsRemoved = append(m.ItemsRemoved, e)
	return nil
}

// newMockRepository связывает моки между собой, чтобы WithTx любого репо
// отдавал остальные моки как "транзакционные".
func newMockRepository(pm *MockProductRepo, om *MockOrderRepo, dm *MockOrderDetailRepo) *repository.Repository {
	om.WithTxFunc = func(ctx context.Context, fn func(repository.OrderRepo, repository.OrderDetailRepo) error) error {
		return fn(om, dm)
	}
	dm.WithTxFunc = func(ctx context.Context, fn func(repository.OrderDetailRepo, repository.OrderRepo, repository.ProductRepo) error) error {
		return fn(dm, om, pm)
	}
	return &repository.Repository{
		Products:     pm,
		Orders:       om,
		OrderDetails: dm,
	}
}
