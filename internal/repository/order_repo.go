package repository

import (
	"context"
	"errors"

	"store-service/internal/models"

	"gorm.io/gorm"
)

type OrderListFilter struct {
	CustomerID *int64
	Status     *models.OrderStatus
	Limit      int
	Offset     int
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (bool, error)
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)

	WithTx(ctx context.Context, fn func(txOrders OrderRepo, txDetails OrderDetailRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Preload("Details").First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Order
	err := q.Order("order_date DESC").Limit(f.Limit).Offset(f.Offset).Preload("Details").Find(&list).Error
	return list, total, err
}

func (r *orderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(txOrders OrderRepo, txDetails OrderDetailRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &orderDetailRepo{db: tx})
	})
}
