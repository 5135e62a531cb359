package service

import "context"

// CustomerDirectory — внешний справочник покупателей. Таблицы customers в
// схеме нет, поэтому проверяем только существование идентификатора.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}

// opaqueCustomerDirectory принимает любой положительный id.
type opaqueCustomerDirectory struct{}

func NewOpaqueCustomerDirectory() CustomerDirectory { return opaqueCustomerDirectory{} }

func (opaqueCustomerDirectory) Exists(_ context.Context, customerID int64) (bool, error) {
	return customerID > 0, nil
}

// StaticCustomerDirectory — фиксированный набор id (для dev/тестов).
type StaticCustomerDirectory map[int64]struct{}

func NewStaticCustomerDirectory(ids ...int64) StaticCustomerDirectory {
	d := make(StaticCustomerDirectory, len(ids))
	for _, id := range ids {
		d[id] = struct{}{}
	}
	return d
}

func (d StaticCustomerDirectory) Exists(_ context.Context, customerID int64) (bool, error) {
	_, ok := d[customerID]
	return ok, nil
}
