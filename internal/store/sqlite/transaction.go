package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/store"
)

const transactionColumns = `id, type, status, amount, currency, from_account_id, to_account_id,
        idempotency_key, description, reference_id, metadata, created_at, completed_at`

// CreateTransaction inserts the record. It relies on the caller wrapping
// it in ExecTx together with the balance updates.
func (s *Store) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	metadata, err := encodeMetadata(tx.Metadata)
	if err != nil {
		return err
	}

	var completedAt sql.NullInt64
	if tx.CompletedAt != nil {
		completedAt = sql.NullInt64{Int64: toUnix(*tx.CompletedAt), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO transactions (`+transactionColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, tx.ID, string(tx.Type), string(tx.Status), tx.Amount, string(tx.Currency),
		tx.FromAccountID, tx.ToAccountID, tx.IdempotencyKey,
		tx.Description, tx.ReferenceID, metadata, toUnix(tx.CreatedAt), completedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", translate(err))
	}
	return nil
}

func (s *Store) CompleteTransaction(ctx context.Context, id string, completedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
        UPDATE transactions
        SET status = ?, completed_at = ?
        WHERE id = ? AND status = ?
    `, string(model.StatusCompleted), toUnix(completedAt), id, string(model.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to complete transaction: %w", translate(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pending transaction %s: %w", id, store.ErrNoRowAffected)
	}
	return nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %s: %w", id, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return tx, nil
}

func (s *Store) GetTransactionByIdempotencyKey(ctx context.Context, key string) (*model.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE idempotency_key = ?`, key)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction with idempotency key %q: %w", key, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction by idempotency key: %w", err)
	}
	return tx, nil
}

// ListTransactionsByAccount returns transactions touching the account,
// newest first.
func (s *Store) ListTransactionsByAccount(ctx context.Context, accountID string, limit int) ([]*model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+transactionColumns+`
        FROM transactions
        WHERE from_account_id = ? OR to_account_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT ?
    `, accountID, accountID, store.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

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

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	tx := &model.Transaction{}
	var (
		txType, status, currency, metadata string
		from, to, key                      sql.NullString
		createdAt                          int64
		completedAt                        sql.NullInt64
	)

	err := row.Scan(
		&tx.ID, &txType, &status, &tx.Amount, &currency,
		&from, &to, &key,
		&tx.Description, &tx.ReferenceID, &metadata,
		&createdAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Type = model.TransactionType(txType)
	tx.Status = model.TransactionStatus(status)
	tx.Currency = model.Currency(currency)
	if from.Valid {
		tx.FromAccountID = &from.String
	}
	if to.Valid {
		tx.ToAccountID = &to.String
	}
	if key.Valid {
		tx.IdempotencyKey = &key.String
	}
	tx.CreatedAt = fromUnix(createdAt)
	if completedAt.Valid {
		t := fromUnix(completedAt.Int64)
		tx.CompletedAt = &t
	}

	if tx.Metadata, err = decodeMetadata(metadata); err != nil {
		return nil, err
	}
	return tx, nil
}

func encodeMetadata(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(b), nil
}

func decodeMetadata(s string) (map[string]string, error) {
	if s == "" || s == "{}" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return m, nil
}
