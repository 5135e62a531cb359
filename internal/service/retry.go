package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

const maxTxRetries = 3

// Коды Postgres, после которых транзакцию имеет смысл повторить.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}
	return false
}

// withTxRetry повторяет fn с экспоненциальной паузой при конфликтах блокировок;
// после исчерпания попыток наружу уходит ErrTransient.
func withTxRetry(ctx context.Context, fn func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = 200 * time.Millisecond

	err := backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if isRetryableTxError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, maxTxRetries), ctx))

	if err != nil && isRetryableTxError(err) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return err
}
