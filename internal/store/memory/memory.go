// Package memory is an in-process Store. Row locks are per-account slots
// held by a unit of work until it commits or rolls back. Balance and
// status changes are staged on a per-unit-of-work copy of the account and
// published on commit, so readers outside the unit of work only see
// committed values. Inserts are undone from a log on rollback.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

type state struct {
	mu           sync.Mutex
	accounts     map[string]*model.Account
	transactions map[string]*txRow
	keys         map[string]string
	locks        *lockTable
	lockTimeout  time.Duration
}

// txRow is a transaction record plus the unit of work that wrote it.
// owner is nil once that unit of work committed.
type txRow struct {
	tx    model.Transaction
	owner *unitOfWork
}

type unitOfWork struct {
	held  map[string]bool
	dirty map[string]*model.Account
	undo  []func()
	rows  []*txRow
}

type Store struct {
	st  *state
	uow *unitOfWork
}

func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &Store{st: &state{
		accounts:     make(map[string]*model.Account),
		transactions: make(map[string]*txRow),
		keys:         make(map[string]string),
		locks:        newLockTable(),
		lockTimeout:  lockTimeout,
	}}
}

func (s *Store) ExecTx(ctx context.Context, fn func(store.Repository) error) error {
	if s.uow != nil {
		return store.ErrAlreadyInTransaction
	}

	uow := &unitOfWork{
		held:  make(map[string]bool),
		dirty: make(map[string]*model.Account),
	}
	err := fn(&Store{st: s.st, uow: uow})

	s.st.mu.Lock()
	if err != nil {
		for i := len(uow.undo) - 1; i >= 0; i-- {
			uow.undo[i]()
		}
	} else {
		for id, acc := range uow.dirty {
			if committed, ok := s.st.accounts[id]; ok {
				*committed = *acc
			}
		}
		for _, row := range uow.rows {
			row.owner = nil
		}
	}
	s.st.mu.Unlock()

	for id := range uow.held {
		s.st.locks.release(id)
	}
	return err
}

func (s *Store) Close() error {
	return nil
}

// lock takes the row slot for the current unit of work, once.
func (s *Store) lock(ctx context.Context, id string) error {
	if s.uow == nil || s.uow.held[id] {
		return nil
	}
	if err := s.st.locks.acquire(ctx, id, s.st.lockTimeout); err != nil {
		return err
	}
	s.uow.held[id] = true
	return nil
}

// onRollback registers an undo step. Callers hold st.mu.
func (s *Store) onRollback(fn func()) {
	if s.uow != nil {
		s.uow.undo = append(s.uow.undo, fn)
	}
}

// account returns the row as the caller sees it: the staged copy inside a
// unit of work that changed it, the committed row otherwise. Callers hold
// st.mu.
func (s *Store) account(id string) (*model.Account, bool) {
	if s.uow != nil {
		if acc, ok := s.uow.dirty[id]; ok {
			return acc, true
		}
	}
	acc, ok := s.st.accounts[id]
	return acc, ok
}

// staged returns a writable row. Inside a unit of work it is a private
// copy published on commit. Callers hold st.mu.
func (s *Store) staged(id string) (*model.Account, bool) {
	acc, ok := s.account(id)
	if !ok || s.uow == nil {
		return acc, ok
	}
	if _, dirty := s.uow.dirty[id]; !dirty {
		cp := *acc
		s.uow.dirty[id] = &cp
		acc = &cp
	}
	return acc, true
}

// visible reports whether the current caller may read row.
func (s *Store) visible(row *txRow) bool {
	return row.owner == nil || row.owner == s.uow
}

var _ store.Store = (*Store)(nil)
