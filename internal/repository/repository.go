package repository

import "gorm.io/gorm"

type Repository struct {
	DB           *gorm.DB
	Products     ProductRepo
	Orders       OrderRepo
	OrderDetails OrderDetailRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:           db,
		Products:     NewProductRepo(db),
		Orders:       NewOrderRepo(db),
		OrderDetails: NewOrderDetailRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }
