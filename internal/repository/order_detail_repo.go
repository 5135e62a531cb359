package repository

import (
	"context"
	"errors"
	"iter"

	"store-service/internal/models"

	"gorm.io/gorm"
)

const detailStreamBatchSize = 100

type OrderDetailRepo interface {
	Create(ctx context.Context, d *models.OrderDetail) error
	GetByID(ctx context.Context, id int64) (*models.OrderDetail, error)
	GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderDetail, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountByOrderID(ctx context.Context, orderID int64) (int64, error)
	CountByProductID(ctx context.Context, productID int64) (int64, error)

	// StreamByOrderID — ленивая последовательность позиций заказа в порядке
	// создания. Перезапускаемая: каждый range заново читает из БД.
	StreamByOrderID(ctx context.Context, orderID int64) iter.Seq2[models.OrderDetail, error]

	WithTx(ctx context.Context, fn func(txDetails OrderDetailRepo, txOrders OrderRepo, txProducts ProductRepo) error) error
}

type orderDetailRepo struct{ db *gorm.DB }

func NewOrderDetailRepo(db *gorm.DB) OrderDetailRepo { return &orderDetailRepo{db: db} }

func (r *orderDetailRepo) Create(ctx context.Context, d *models.OrderDetail) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *orderDetailRepo) GetByID(ctx context.Context, id int64) (*models.OrderDetail, error) {
	var d models.OrderDetail
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &d, err
}

func (r *orderDetailRepo) GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderDetail, error) {
	var rows []models.OrderDetail
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *orderDetailRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.OrderDetail{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *orderDetailRepo) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderDetail{}).Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt, err
}

func (r *orderDetailRepo) CountByProductID(ctx context.Context, productID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderDetail{}).Where("product_id = ?", productID).Count(&cnt).Error
	return cnt, err
}

func (r *orderDetailRepo) StreamByOrderID(ctx context.Context, orderID int64) iter.Seq2[models.OrderDetail, error] {
	return func(yield func(models.OrderDetail, error) bool) {
		var lastID int64
		for {
			var batch []models.OrderDetail
			err := r.db.WithContext(ctx).
				Where("order_id = ? AND id > ?", orderID, lastID).
				Order("id ASC").
				Limit(detailStreamBatchSize).
				Find(&batch).Error
			if err != nil {
				yield(models.OrderDetail{}, err)
				return
			}
			for _, d := range batch {
				if !yield(d, nil) {
					return
				}
				lastID = d.ID
			}
			if len(batch) < detailStreamBatchSize {
				return
			}
		}
	}
}

func (r *orderDetailRepo) WithTx(ctx context.Context, fn func(txDetails OrderDetailRepo, txOrders OrderRepo, txProducts ProductRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderDetailRepo{db: tx}, &orderRepo{db: tx}, &productRepo{db: tx})
	})
}
