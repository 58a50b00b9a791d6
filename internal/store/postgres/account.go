package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

const accountColumns = `id::text, owner_id, name, currency, balance, version, active, created_at, updated_at`

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO accounts (id, owner_id, name, currency, balance, version, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, acc.ID, acc.OwnerID, acc.Name, string(acc.Currency), acc.Balance, acc.Version, acc.Active,
		acc.CreatedAt, acc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", translate(err))
	}
	return nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	return s.getAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (s *Store) ListAccounts(ctx context.Context, ownerID string, limit int) ([]*model.Account, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE ($1 = '' OR owner_id = $1)
		ORDER BY created_at, id
		LIMIT $2
	`, ownerID, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

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

// LockAccount takes a row lock held until the unit of work ends.
func (s *Store) LockAccount(ctx context.Context, id string) (*model.Account, error) {
	if !s.inTx() {
		return nil, store.ErrNotInTransaction
	}
	return s.getAccount(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
}

func (s *Store) UpdateBalance(ctx context.Context, id string, delta int64) (*model.Account, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND active AND balance + $1 >= 0
		RETURNING `+accountColumns,
		delta, id)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoRowAffected
		}
		return nil, fmt.Errorf("failed to update balance of account %s: %w", id, translate(err))
	}
	return acc, nil
}

func (s *Store) DeactivateAccount(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE accounts
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND active AND balance = 0
	`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", id, translate(err))
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNoRowAffected
	}
	return nil
}

func (s *Store) getAccount(ctx context.Context, query, id string) (*model.Account, error) {
	acc, err := scanAccount(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account with ID %s: %w", id, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account with ID %s: %w", id, translate(err))
	}
	return acc, nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	acc := &model.Account{}
	var currency string

	err := row.Scan(
		&acc.ID, &acc.OwnerID, &acc.Name, &currency,
		&acc.Balance, &acc.Version, &acc.Active,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc.Currency = model.Currency(currency)
	return acc, nil
}
