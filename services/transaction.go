package services

import (
	"context"

	"github.com/upb/casting-agency/repositories"
)

// WithTransactionResult runs fn inside a transaction managed by txMgr and
// returns its result. fn receives the transaction-carrying context and must
// pass it to repositories so their queries join the transaction.
func WithTransactionResult[T any](ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context, tx repositories.Transaction) (T, error)) (T, error) {
	var result T
	err := txMgr.InTransaction(ctx, func(ctx context.Context, tx repositories.Transaction) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
