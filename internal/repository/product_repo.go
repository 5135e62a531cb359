package repository

import (
	"context"
	"errors"
	"strings"

	"store-service/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductListFilter struct {
	Query       string // по name/description
	Category    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	OnlyInStock bool
	Limit       int
	Offset      int
}

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (bool, error)
	List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// AdjustQuantity атомарно применяет дельту; false, если ушли бы в минус
	// (или строка не найдена — различается через Exists).
	AdjustQuantity(ctx context.Context, id int64, delta int32) (bool, error)

	WithTx(ctx context.Context, fn func(tx ProductRepo) error) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	if len(fields) == 0 {
		return true, nil
	}
	tx := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) List(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where("lower(name) LIKE lower(?) OR lower(description) LIKE lower(?)", "%"+s+"%", "%"+s+"%")
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("lower(category) = lower(?)", c)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.OnlyInStock {
		q = q.Where("quantity > 0")
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

	var list []models.Product
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *productRepo) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("quantity > 0").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *productRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, err
}

func (r *productRepo) AdjustQuantity(ctx context.Context, id int64, delta int32) (bool, error) {
	// атомарно: quantity += delta, только если результат неотрицательный
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET quantity = quantity + @delta,
    updated_at = now()
WHERE id = @pid
  AND quantity + @delta >= 0
`, map[string]any{
		"pid":   id,
		"delta": delta,
	})
	return tx.RowsAffected > 0, tx.Error
}

func (r *productRepo) WithTx(ctx context.Context, fn func(tx ProductRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&productRepo{db: tx})
	})
}
