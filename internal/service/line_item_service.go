package service

import (
	"context"
	"iter"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"

	"github.com/google/uuid"
)

// lineItemService — точка координации: сверяет заказ и каталог и резервирует
// склад в одной транзакции с позицией заказа.
type lineItemService struct {
	repo   *repository.Repository
	events EventBus
	now    func() time.Time
}

func NewLineItemService(repo *repository.Repository, events EventBus) LineItemService {
	return &lineItemService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (s *lineItemService) AddLineItem(ctx context.Context, in AddLineItemInput) (*models.OrderDetail, error) {
	if in.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	if in.UnitPrice != nil && !in.UnitPrice.IsPositive() {
		return nil, ErrPriceInvalid
	}

	var detail *models.OrderDetail

	err := withTxRetry(ctx, func() error {
		return s.repo.OrderDetails.WithTx(ctx, func(txDetails repository.OrderDetailRepo, txOrders repository.OrderRepo, txProducts repository.ProductRepo) error {
			ord, err := txOrders.GetByID(ctx, in.OrderID)
			if err != nil {
				return err
			}
			if ord == nil {
				return ErrOrderNotFound
			}
			if ord.Status != models.OrderStatusPending {
				return ErrOrderNotPending
			}

			product, err := txProducts.GetByID(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}

			unitPrice := product.Price // снапшот текущей цены каталога
			if in.UnitPrice != nil {
				unitPrice = *in.UnitPrice
			}

			ok, err := txProducts.AdjustQuantity(ctx, in.ProductID, -in.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}

			d := &models.OrderDetail{
				OrderID:   in.OrderID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				UnitPrice: unitPrice,
				CreatedAt: s.now(),
			}
			if err := txDetails.Create(ctx, d); err != nil {
				return translateConstraint(err)
			}

			detail = d
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishLineItemAdded(ctx, LineItemAddedEvent{
			EventID:   uuid.New(),
			DetailID:  detail.ID,
			OrderID:   detail.OrderID,
			ProductID: detail.ProductID,
			Quantity:  detail.Quantity,
			UnitPrice: detail.UnitPrice,
			AddedAt:   detail.CreatedAt,
		})
	}

	return detail, nil
}

func (s *lineItemService) RemoveLineItem(ctx context.Context, orderDetailID int64) error {
	var removed *models.OrderDetail

	err := withTxRetry(ctx, func() error {
		return s.repo.OrderDetails.WithTx(ctx, func(txDetails repository.OrderDetailRepo, txOrders repository.OrderRepo, txProducts repository.ProductRepo) error {
			d, err := txDetails.GetByID(ctx, orderDetailID)
			if err != nil {
				return err
			}
			if d == nil {
				return ErrOrderDetailNotFound
			}

			ord, err := txOrders.GetByID(ctx, d.OrderID)
			if err != nil {
				return err
			}
			if ord == nil {
				return ErrOrderNotFound
			}
			if ord.Status != models.OrderStatusPending {
				return ErrOrderNotPending
			}

			// возврат резерва; плюсовая дельта не может уйти в минус
			if _, err := txProducts.AdjustQuantity(ctx, d.ProductID, d.Quantity); err != nil {
				return err
			}

			ok, err := txDetails.Delete(ctx, orderDetailID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrOrderDetailNotFound
			}

			removed = d
			return nil
		})
	})
	if err != nil {
		return err
	}

	if s.events != nil {
		_ = s.events.PublishLineItemRemoved(ctx, LineItemRemovedEvent{
			EventID:   uuid.New(),
			DetailID:  removed.ID,
			OrderID:   removed.OrderID,
			ProductID: removed.ProductID,
			Quantity:  removed.Quantity,
			RemovedAt: s.now(),
		})
	}

	return nil
}

func (s *lineItemService) ListLineItems(ctx context.Context, orderID int64) (iter.Seq2[models.OrderDetail, error], error) {
	exists, err := s.repo.Orders.Exists(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOrderNotFound
	}
	return s.repo.OrderDetails.StreamByOrderID(ctx, orderID), nil
}
