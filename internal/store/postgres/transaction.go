package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

const transactionColumns = `id::text, type, status, amount, currency, from_account_id::text, to_account_id::text,
		idempotency_key, description, reference_id, metadata, created_at, completed_at`

func (s *Store) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	metadata := tx.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO transactions (id, type, status, amount, currency, from_account_id, to_account_id,
			idempotency_key, description, reference_id, metadata, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, tx.ID, string(tx.Type), string(tx.Status), tx.Amount, string(tx.Currency),
		tx.FromAccountID, tx.ToAccountID, tx.IdempotencyKey,
		tx.Description, tx.ReferenceID, metadata, tx.CreatedAt, tx.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", translate(err))
	}
	return nil
}

func (s *Store) CompleteTransaction(ctx context.Context, id string, completedAt time.Time) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE transactions
		SET status = $1, completed_at = $2
		WHERE id = $3 AND status = $4
	`, string(model.StatusCompleted), completedAt, id, string(model.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to complete transaction: %w", translate(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending transaction %s: %w", id, store.ErrNoRowAffected)
	}
	return nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %s: %w", id, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", translate(err))
	}
	return tx, nil
}

func (s *Store) GetTransactionByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error) {
	tx, err := scanTransaction(s.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE idempotency_key = $1`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction with idempotency key %q: %w", key, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction by idempotency key: %w", err)
	}
	return tx, nil
}

func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]*model.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, accountID, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", translate(err))
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	tx := &model.Transaction{}
	var txType, status, currency string

	err := row.Scan(
		&tx.ID, &txType, &status, &tx.Amount, &currency,
		&tx.FromAccountID, &tx.ToAccountID, &tx.IdempotencyKey,
		&tx.Description, &tx.ReferenceID, &tx.Metadata,
		&tx.CreatedAt, &tx.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Type = model.TransactionType(txType)
	tx.Status = model.TransactionStatus(status)
	tx.Currency = model.Currency(currency)
	if len(tx.Metadata) == 0 {
		tx.Metadata = nil
	}
	return tx, nil
}
