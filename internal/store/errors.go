package store

import "errors"

var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrConstraintViolation     = errors.New("database constraint violation")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
	ErrNoRowAffected           = errors.New("no row affected")
	ErrLockTimeout             = errors.New("timed out waiting for row lock")
	ErrAlreadyInTransaction    = errors.New("store is already in a transaction")
	ErrNotInTransaction        = errors.New("operation requires a transaction")
)

const DefaultListLimit = 100

// NormalizeLimit applies the default page size to non-positive limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
