package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) error {
	if acc.Balance < 0 {
		return fmt.Errorf("account %s balance: %w", acc.ID, store.ErrConstraintViolation)
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if _, exists := s.st.accounts[acc.ID]; exists {
		return fmt.Errorf("account %s: %w", acc.ID, store.ErrConstraintViolation)
	}

	cp := *acc
	s.st.accounts[acc.ID] = &cp
	s.onRollback(func() { delete(s.st.accounts, acc.ID) })
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	acc, ok := s.account(id)
	if !ok {
		return nil, fmt.Errorf("account with ID %s: %w", id, store.ErrRecordNotFound)
	}
	cp := *acc
	return &cp, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID string, limit int) ([]*model.Account, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	var accounts []*model.Account
	for id := range s.st.accounts {
		acc, _ := s.account(id)
		if ownerID != "" && acc.OwnerID != ownerID {
			continue
		}
		cp := *acc
		accounts = append(accounts, &cp)
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID < accounts[j].ID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	if limit = store.NormalizeLimit(limit); len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}

func (s *Store) LockAccount(ctx context.Context, id string) (*model.Account, error) {
	if s.uow == nil {
		return nil, store.ErrNotInTransaction
	}
	if err := s.lock(ctx, id); err != nil {
		return nil, err
	}
	return s.GetAccountByID(ctx, id)
}

func (s *Store) UpdateBalance(ctx context.Context, id string, delta int64) (*model.Account, error) {
	if err := s.lock(ctx, id); err != nil {
		return nil, err
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	acc, ok := s.account(id)
	if !ok || !acc.Active || acc.Balance+delta < 0 {
		return nil, store.ErrNoRowAffected
	}

	acc, _ = s.staged(id)
	acc.Balance += delta
	acc.Version++
	acc.UpdatedAt = time.Now().UTC()

	cp := *acc
	return &cp, nil
}

func (s *Store) DeactivateAccount(ctx context.Context, id string) error {
	if err := s.lock(ctx, id); err != nil {
		return err
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	acc, ok := s.account(id)
	if !ok || !acc.Active || acc.Balance != 0 {
		return store.ErrNoRowAffected
	}

	acc, _ = s.staged(id)
	acc.Active = false
	acc.UpdatedAt = time.Now().UTC()
	return nil
}
