package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

// idempotencyGuard resolves an idempotency key to the transaction that
// already carries it. An empty key never matches.
type idempotencyGuard struct {
	repo store.TransactionRepository
}

// lookup returns the stored transaction for key, or nil when there is none.
func (g idempotencyGuard) lookup(ctx context.Context, key string) (*model.Transaction, error) {
	if key == "" {
		return nil, nil
	}

	tx, err := g.repo.GetTransactionByIdempotencyKey(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return tx, nil
}

// resolveConflict runs after an insert lost the race on key and its unit of
// work rolled back. The winner is normally visible by now; when it is not,
// the caller should retry.
func (g idempotencyGuard) resolveConflict(ctx context.Context, key string) (*model.Transaction, error) {
	tx, err := g.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: idempotency key %q is held by an unfinished request", ErrRetryable, key)
	}
	return tx, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrRecordNotFound)
}

func accountNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
}
