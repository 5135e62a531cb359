package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Базовые виды ошибок; конкретные ошибки ниже оборачивают их,
// проверка — через errors.Is.
var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrTransient            = errors.New("transient storage error")
)

var (
	ErrProductNotFound     = fmt.Errorf("%w: product", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("%w: order", ErrNotFound)
	ErrOrderDetailNotFound = fmt.Errorf("%w: order detail", ErrNotFound)

	ErrNameRequired      = fmt.Errorf("%w: name must not be empty", ErrValidation)
	ErrCategoryRequired  = fmt.Errorf("%w: category must not be empty", ErrValidation)
	ErrPriceInvalid      = fmt.Errorf("%w: price must be > 0", ErrValidation)
	ErrQuantityNegative  = fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	ErrQuantityInvalid   = fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	ErrCustomerRequired  = fmt.Errorf("%w: customer id required", ErrValidation)
	ErrOrderDateRequired = fmt.Errorf("%w: order date required", ErrValidation)
	ErrStatusUnknown     = fmt.Errorf("%w: unknown order status", ErrValidation)

	ErrProductReferenced = fmt.Errorf("%w: product is referenced by order details", ErrReferentialIntegrity)
	ErrOrderHasDetails   = fmt.Errorf("%w: order has details", ErrReferentialIntegrity)

	ErrOrderNotPending = fmt.Errorf("%w: order is not pending", ErrInvalidTransition)
)

const pgForeignKeyViolation = "23503"

// translateConstraint переводит нарушение FK со стороны БД в доменную ошибку.
// Страховка на случай гонки между прикладной проверкой и удалением.
func translateConstraint(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %s", ErrReferentialIntegrity, pgErr.ConstraintName)
	}
	return err
}
