package model

import (
	"errors"
	"time"
)

type TransactionType string

const (
	TypeDeposit    TransactionType = "DEPOSIT"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeTransfer   TransactionType = "TRANSFER"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	// StatusCancelled is reserved for manual intervention; no operation produces it.
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is one attempted money movement. It is immutable once COMPLETED.
type Transaction struct {
	ID             string            `json:"id"`
	Type           TransactionType   `json:"type"`
	Status         TransactionStatus `json:"status"`
	Amount         int64             `json:"amount"`
	Currency       Currency          `json:"currency"`
	FromAccountID  *string           `json:"from_account_id,omitempty"`
	ToAccountID    *string           `json:"to_account_id,omitempty"`
	IdempotencyKey *string           `json:"idempotency_key,omitempty"`
	Description    string            `json:"description,omitempty"`
	ReferenceID    string            `json:"reference_id,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}

// AccountIDs lists the accounts the transaction touches.
func (t *Transaction) AccountIDs() []string {
	var ids []string
	if t.FromAccountID != nil {
		ids = append(ids, *t.FromAccountID)
	}
	if t.ToAccountID != nil {
		ids = append(ids, *t.ToAccountID)
	}
	return ids
}

// Validate checks the account shape required by the transaction type.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !t.Currency.Valid() {
		return errors.New("unsupported currency")
	}

	hasFrom := t.FromAccountID != nil && *t.FromAccountID != ""
	hasTo := t.ToAccountID != nil && *t.ToAccountID != ""

	switch t.Type {
	case TypeTransfer:
		if !hasFrom || !hasTo {
			return errors.New("transfer requires both source and destination accounts")
		}
		if *t.FromAccountID == *t.ToAccountID {
			return errors.New("source and destination accounts must differ")
		}
	case TypeDeposit:
		if !hasTo || hasFrom {
			return errors.New("deposit requires only a destination account")
		}
	case TypeWithdrawal:
		if !hasFrom || hasTo {
			return errors.New("withdrawal requires only a source account")
		}
	default:
		return errors.New("unknown transaction type")
	}
	return nil
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" for a nil pointer.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
