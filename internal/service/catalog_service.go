package service

import (
	"context"
	"strings"
	"time"

	"store-service/internal/models"
	"store-service/internal/repository"

	"github.com/shopspring/decimal"
)

type catalogService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCatalogService(repo *repository.Repository) CatalogService {
	return &catalogService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)

	if name == "" {
		return nil, ErrNameRequired
	}
	if category == "" {
		return nil, ErrCategoryRequired
	}
	if !in.Price.IsPositive() {
		return nil, ErrPriceInvalid
	}
	if in.Quantity < 0 {
		return nil, ErrQuantityNegative
	}

	now := s.now()
	p := &models.Product{
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID int64, patch ProductPatch) (*models.Product, error) {
	fields := map[string]any{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = name
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return nil, ErrCategoryRequired
		}
		fields["category"] = category
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}

	if len(fields) == 0 {
		return s.GetProduct(ctx, productID)
	}
	fields["updated_at"] = s.now()

	ok, err := s.repo.Products.UpdateFields(ctx, productID, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return s.GetProduct(ctx, productID)
}

func (s *catalogService) UpdatePrice(ctx context.Context, productID int64, newPrice decimal.Decimal) (*models.Product, error) {
	if !newPrice.IsPositive() {
		return nil, ErrPriceInvalid
	}

	ok, err := s.repo.Products.UpdateFields(ctx, productID, map[string]any{
		"price":      newPrice,
		"updated_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return s.GetProduct(ctx, productID)
}

func (s *catalogService) AdjustQuantity(ctx context.Context, productID int64, delta int32) (*models.Product, error) {
	var updated *models.Product

	err := withTxRetry(ctx, func() error {
		return s.repo.Products.WithTx(ctx, func(tx repository.ProductRepo) error {
			ok, err := tx.AdjustQuantity(ctx, productID, delta)
			if err != nil {
				return err
			}
			if !ok {
				// либо продукта нет, либо ушли бы в минус
				exists, err := tx.Exists(ctx, productID)
				if err != nil {
					return err
				}
				if !exists {
					return ErrProductNotFound
				}
				return ErrInsufficientStock
			}
			updated, err = tx.GetByID(ctx, productID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *catalogService) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.Products.List(ctx, toRepoProductFilter(f))
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.Products.ListCategories(ctx)
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID int64) error {
	return s.repo.OrderDetails.WithTx(ctx, func(txDetails repository.OrderDetailRepo, _ repository.OrderRepo, txProducts repository.ProductRepo) error {
		cnt, err := txDetails.CountByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrProductReferenced
		}

		ok, err := txProducts.Delete(ctx, productID)
		if err != nil {
			return translateConstraint(err)
		}
		if !ok {
			return ErrProductNotFound
		}
		return nil
	})
}
