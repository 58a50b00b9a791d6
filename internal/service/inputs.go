package service

import (
	"fmt"
	"strings"

	"github.com/hance08/ledger/internal/ledger"
	"github.com/hance08/ledger/internal/model"
	"github.com/hance08/ledger/internal/validation"
)

type CreateAccountInput struct {
	OwnerID        string `json:"owner_id,omitempty"`
	Name           string `json:"name"`
	Currency       string `json:"currency,omitempty"`
	InitialBalance int64  `json:"initial_balance"`
}

type TransferInput struct {
	FromAccountID  string            `json:"from_account_id"`
	ToAccountID    string            `json:"to_account_id"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Description    string            `json:"description,omitempty"`
	ReferenceID    string            `json:"reference_id,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type DepositInput struct {
	AccountID      string            `json:"account_id"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency,omitempty"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Description    string            `json:"description,omitempty"`
	ReferenceID    string            `json:"reference_id,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// WithdrawalInput has the same shape as DepositInput.
type WithdrawalInput DepositInput

func (in CreateAccountInput) validate() error {
	return invalid(validation.First(
		validation.ValidateAccountName(in.Name),
		validation.ValidateCurrency(in.Currency),
		validation.ValidateInitialBalance(in.InitialBalance),
	))
}

func (in TransferInput) validate() error {
	return invalid(validation.First(
		validation.ValidateAccountID(in.FromAccountID),
		validation.ValidateAccountID(in.ToAccountID),
		validation.ValidateDistinctAccounts(in.FromAccountID, in.ToAccountID),
		validation.ValidateAmount(in.Amount),
		validation.ValidateCurrency(in.Currency),
		validation.ValidateIdempotencyKey(in.IdempotencyKey),
		validation.ValidateDescription(in.Description),
		validation.ValidateReferenceID(in.ReferenceID),
		validation.ValidateMetadata(in.Metadata),
	))
}

func (in DepositInput) validate() error {
	return invalid(validation.First(
		validation.ValidateAccountID(in.AccountID),
		validation.ValidateAmount(in.Amount),
		validation.ValidateCurrency(in.Currency),
		validation.ValidateIdempotencyKey(in.IdempotencyKey),
		validation.ValidateDescription(in.Description),
		validation.ValidateReferenceID(in.ReferenceID),
		validation.ValidateMetadata(in.Metadata),
	))
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ledger.ErrValidation, err)
}

// currencyOr parses code, falling back to def when code is empty.
func currencyOr(code string, def model.Currency) model.Currency {
	if strings.TrimSpace(code) == "" {
		return def
	}
	c, _ := model.ParseCurrency(code)
	return c
}
