package ledger

import (
	"errors"
	"fmt"

	"github.com/hance08/ledger/internal/store"
)

var (
	ErrValidation          = errors.New("invalid request")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrBalanceNotZero      = errors.New("account balance is not zero")
	ErrKeyReused           = errors.New("idempotency key already used for a different request")
	ErrRetryable           = errors.New("temporarily unavailable, retry the request")
	ErrInternal            = errors.New("internal error")
)

// Code is the stable error identifier exposed at the boundaries.
type Code string

const (
	CodeBadRequest        Code = "BAD_REQUEST"
	CodeAccountNotFound   Code = "ACCOUNT_NOT_FOUND"
	CodeNotFound          Code = "NOT_FOUND"
	CodeForbidden         Code = "FORBIDDEN"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeCurrencyMismatch  Code = "CURRENCY_MISMATCH"
	CodeAccountInactive   Code = "ACCOUNT_INACTIVE"
	CodeBalanceNotZero    Code = "BALANCE_NOT_ZERO"
	CodeKeyReused         Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRetryable         Code = "RETRYABLE"
	CodeInternal          Code = "INTERNAL"
)

var codes = []struct {
	err  error
	code Code
}{
	{ErrValidation, CodeBadRequest},
	{ErrAccountNotFound, CodeAccountNotFound},
	{ErrTransactionNotFound, CodeNotFound},
	{ErrForbidden, CodeForbidden},
	{ErrInsufficientFunds, CodeInsufficientFunds},
	{ErrCurrencyMismatch, CodeCurrencyMismatch},
	{ErrAccountInactive, CodeAccountInactive},
	{ErrBalanceNotZero, CodeBalanceNotZero},
	{ErrKeyReused, CodeKeyReused},
	{ErrRetryable, CodeRetryable},
}

// CodeOf classifies err. Anything unrecognised is INTERNAL.
func CodeOf(err error) Code {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// translate maps storage failures that escaped the engine's own checks.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case CodeOf(err) != CodeInternal:
		return err
	case errors.Is(err, store.ErrLockTimeout):
		return fmt.Errorf("%w: %v", ErrRetryable, err)
	case errors.Is(err, store.ErrDuplicateIdempotencyKey):
		return fmt.Errorf("%w: %v", ErrRetryable, err)
	case errors.Is(err, store.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, ErrInternal):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
