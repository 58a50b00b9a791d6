package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

const accountColumns = `id, owner_id, name, currency, balance, version, active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO accounts (id, owner_id, name, currency, balance, version, active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, acc.ID, acc.OwnerID, acc.Name, string(acc.Currency), acc.Balance, acc.Version, acc.Active,
		toUnix(acc.CreatedAt), toUnix(acc.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert account '%s': %w", acc.ID, translate(err))
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %s: %w", id, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %s: %w", id, err)
	}
	return acc, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID string, limit int) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+accountColumns+`
        FROM accounts
        WHERE (? = '' OR owner_id = ?)
        ORDER BY created_at, id
        LIMIT ?
    `, ownerID, ownerID, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// LockAccount reads the row inside the unit of work. The exclusive lock
// itself is the database write lock taken by BEGIN IMMEDIATE.
func (s *Store) LockAccount(ctx context.Context, id string) (*model.Account, error) {
	if !s.inTx() {
		return nil, store.ErrNotInTransaction
	}
	return s.GetAccountByID(ctx, id)
}

func (s *Store) UpdateBalance(ctx context.Context, id string, delta int64) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, `
        UPDATE accounts
        SET balance = balance + ?, version = version + 1, updated_at = ?
        WHERE id = ? AND active = 1 AND balance + ? >= 0
        RETURNING `+accountColumns,
		delta, toUnix(time.Now()), id, delta)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoRowAffected
		}
		return nil, fmt.Errorf("failed to update balance of account %s: %w", id, translate(err))
	}
	return acc, nil
}

func (s *Store) DeactivateAccount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE accounts
        SET active = 0, updated_at = ?
        WHERE id = ? AND active = 1 AND balance = 0
    `, toUnix(time.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", id, translate(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrNoRowAffected
	}
	return nil
}

func scanAccount(row rowScanner) (*model.Account, error) {
	acc := &model.Account{}
	var currency string
	var createdAt, updatedAt int64

	err := row.Scan(
		&acc.ID, &acc.OwnerID, &acc.Name, &currency,
		&acc.Balance, &acc.Version, &acc.Active,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.Currency = model.Currency(currency)
	acc.CreatedAt = fromUnix(createdAt)
	acc.UpdatedAt = fromUnix(updatedAt)
	return acc, nil
}
