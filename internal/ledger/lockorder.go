package ledger

import (
	"context"
	"slices"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

// lockOrder returns the distinct IDs in lexicographic order. Every unit of
// work locks accounts in this order, whatever the direction of the movement.
func lockOrder(ids ...string) []string {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	return slices.Compact(ordered)
}

// acquireLocks locks ids in lock order and returns the locked rows by ID.
// A missing account yields ErrAccountNotFound.
func acquireLocks(ctx context.Context, repo store.Repository, ids ...string) (map[string]*model.Account, error) {
	locked := make(map[string]*model.Account, len(ids))
	for _, id := range lockOrder(ids...) {
		acc, err := repo.LockAccount(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return nil, accountNotFound(id)
			}
			return nil, err
		}
		locked[id] = acc
	}
	return locked, nil
}
