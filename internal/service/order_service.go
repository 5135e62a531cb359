package service

import (
	"context"
	"fmt"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	repo      *repository.Repository
	customers CustomerDirectory
	events    EventBus
	now       func() time.Time
}

func NewOrderService(repo *repository.Repository, customers CustomerDirectory, events EventBus) OrderService {
	if customers == nil {
		customers = NewOpaqueCustomerDirectory()
	}
	return &orderService{
		repo:      repo,
		customers: customers,
		events:    events,
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.CustomerID <= 0 {
		return nil, ErrCustomerRequired
	}
	if in.OrderDate.IsZero() {
		return nil, ErrOrderDateRequired
	}

	known, err := s.customers.Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: customer %d", ErrValidation, in.CustomerID)
	}

	now := s.now()
	order := &models.Order{
		CustomerID: in.CustomerID,
		OrderDate:  in.OrderDate,
		Status:     models.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			EventID:    uuid.New(),
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			OrderDate:  order.OrderDate,
			CreatedAt:  order.CreatedAt,
		})
	}

	return order, nil
}

func (s *orderService) Transition(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.IsValid() {
		return nil, ErrStatusUnknown
	}

	var (
		oldStatus models.OrderStatus
		updated   *models.Order
	)

	err := withTxRetry(ctx, func() error {
		return s.repo.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, _ repository.OrderDetailRepo) error {
			ord, err := txOrders.GetByID(ctx, orderID)
			if err != nil {
				return err
			}
			if ord == nil {
				return ErrOrderNotFound
			}
			if !ord.Status.CanTransitionTo(newStatus) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, newStatus)
			}

			oldStatus = ord.Status
			if _, err := txOrders.UpdateStatus(ctx, orderID, newStatus); err != nil {
				return err
			}

			updated, err = txOrders.GetByID(ctx, orderID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			EventID:   uuid.New(),
			OrderID:   orderID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			ChangedAt: s.now(),
		})
	}

	return updated, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f OrderListFilter) ([]models.Order, int64, error) {
	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		CustomerID: f.CustomerID,
		Status:     f.Status,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID int64) error {
	return s.repo.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, txDetails repository.OrderDetailRepo) error {
		cnt, err := txDetails.CountByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOrderHasDetails
		}

		ok, err := txOrders.Delete(ctx, orderID)
		if err != nil {
			return translateConstraint(err)
		}
		if !ok {
			return ErrOrderNotFound
		}
		return nil
	})
}
