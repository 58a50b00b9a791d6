package store

import (
	"context"
	"time"

	"github.com/hance08/ledger/internal/model"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, acc *model.Account) error
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	ListAccounts(ctx context.Context, ownerID string, limit int) ([]*model.Account, error)

	// LockAccount takes an exclusive lock on the account row for the rest of
	// the unit of work and returns the row as seen under that lock.
	LockAccount(ctx context.Context, id string) (*model.Account, error)

	// UpdateBalance applies delta as a single conditional update that only
	// succeeds when the account is active and balance+delta stays >= 0.
	// It returns ErrNoRowAffected otherwise.
	UpdateBalance(ctx context.Context, id string, delta int64) (*model.Account, error)

	// DeactivateAccount flips active to false when the balance is zero.
	// It returns ErrNoRowAffected otherwise.
	DeactivateAccount(ctx context.Context, id string) error
}

type TransactionRepository interface {
	// CreateTransaction returns ErrDuplicateIdempotencyKey when the key is taken.
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	CompleteTransaction(ctx context.Context, id string, completedAt time.Time) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]*model.Transaction, error)
}

type Repository interface {
	AccountRepository
	TransactionRepository
}

// Store is a Repository that can open units of work. Locks taken inside fn
// are released when ExecTx commits or rolls back.
type Store interface {
	Repository
	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}
