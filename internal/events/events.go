// Package events carries notifications emitted after a ledger unit of work
// has committed.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/ledger/internal/model"
)

const TopicTransactionCompleted = "transaction_completed"

type TransactionCompleted struct {
	TransactionID string                `json:"transaction_id"`
	Type          model.TransactionType `json:"type"`
	FromAccount   string                `json:"from_account,omitempty"`
	ToAccount     string                `json:"to_account,omitempty"`
	AmountMinor   int64                 `json:"amount_minor"`
	Amount        decimal.Decimal       `json:"amount"`
	Currency      model.Currency        `json:"currency"`
	ReferenceID   string                `json:"reference_id,omitempty"`
	OccurredAt    time.Time             `json:"occurred_at"`
}

// NewTransactionCompleted builds the event for a COMPLETED transaction.
func NewTransactionCompleted(tx *model.Transaction) TransactionCompleted {
	occurred := tx.CreatedAt
	if tx.CompletedAt != nil {
		occurred = *tx.CompletedAt
	}
	return TransactionCompleted{
		TransactionID: tx.ID,
		Type:          tx.Type,
		FromAccount:   model.Deref(tx.FromAccountID),
		ToAccount:     model.Deref(tx.ToAccountID),
		AmountMinor:   tx.Amount,
		Amount:        decimal.New(tx.Amount, -tx.Currency.Exponent()),
		Currency:      tx.Currency,
		ReferenceID:   tx.ReferenceID,
		OccurredAt:    occurred,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event TransactionCompleted) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, TransactionCompleted) error { return nil }
func (Nop) Close() error { return nil }
