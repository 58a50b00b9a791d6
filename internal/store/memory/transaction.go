package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

func (s *Store) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrConstraintViolation, err)
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if _, exists := s.st.transactions[tx.ID]; exists {
		return fmt.Errorf("transaction %s: %w", tx.ID, store.ErrConstraintViolation)
	}
	for _, id := range tx.AccountIDs() {
		if _, ok := s.st.accounts[id]; !ok {
			return fmt.Errorf("account %s: %w", id, store.ErrConstraintViolation)
		}
	}

	key := model.Deref(tx.IdempotencyKey)
	if key != "" {
		if _, taken := s.st.keys[key]; taken {
			return fmt.Errorf("key %q: %w", key, store.ErrDuplicateIdempotencyKey)
		}
		s.st.keys[key] = tx.ID
	}

	row := &txRow{tx: copyTransaction(tx), owner: s.uow}
	s.st.transactions[tx.ID] = row
	if s.uow != nil {
		s.uow.rows = append(s.uow.rows, row)
	}

	s.onRollback(func() {
		delete(s.st.transactions, tx.ID)
		if key != "" {
			delete(s.st.keys, key)
		}
	})
	return nil
}

func (s *Store) CompleteTransaction(ctx context.Context, id string, completedAt time.Time) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	row, ok := s.st.transactions[id]
	if !ok || !s.visible(row) || row.tx.Status != model.StatusPending {
		return fmt.Errorf("pending transaction %s: %w", id, store.ErrNoRowAffected)
	}

	prev := row.tx
	row.tx.Status = model.StatusCompleted
	row.tx.CompletedAt = &completedAt
	s.onRollback(func() { row.tx = prev })
	return nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	row, ok := s.st.transactions[id]
	if !ok || !s.visible(row) {
		return nil, fmt.Errorf("transaction with ID %s: %w", id, store.ErrRecordNotFound)
	}
	tx := copyTransaction(&row.tx)
	return &tx, nil
}

func (s *Store) GetTransactionByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	id, ok := s.st.keys[key]
	if !ok {
		return nil, fmt.Errorf("transaction with idempotency key %q: %w", key, store.ErrRecordNotFound)
	}
	row := s.st.transactions[id]
	if row == nil || !s.visible(row) {
		return nil, fmt.Errorf("transaction with idempotency key %q: %w", key, store.ErrRecordNotFound)
	}
	tx := copyTransaction(&row.tx)
	return &tx, nil
}

func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]*model.Transaction, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	var transactions []*model.Transaction
	for _, row := range s.st.transactions {
		if !s.visible(row) {
			continue
		}
		if model.Deref(row.tx.FromAccountID) != accountID && model.Deref(row.tx.ToAccountID) != accountID {
			continue
		}
		tx := copyTransaction(&row.tx)
		transactions = append(transactions, &tx)
	}

	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].CreatedAt.Equal(transactions[j].CreatedAt) {
			return transactions[i].ID > transactions[j].ID
		}
		return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
	})

	if limit = store.NormalizeLimit(limit); len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func copyTransaction(tx *model.Transaction) model.Transaction {
	cp := *tx
	if tx.Metadata != nil {
		cp.Metadata = maps.Clone(tx.Metadata)
	}
	if tx.CompletedAt != nil {
		t := *tx.CompletedAt
		cp.CompletedAt = &t
	}
	return cp
}
