// Package validation holds the field checks shared by the service inputs
// and the interactive prompts.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hance08/ledger/internal/constants"
	"github.com/hance08/ledger/internal/model"
)

// ValidateAccountName validates a display name for an account.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("account name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("account name can't contain control characters")
		}
	}
	return nil
}

func ValidateOwnerID(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return fmt.Errorf("owner ID can't be empty")
	}
	if len(ownerID) > constants.MaxNameLen {
		return fmt.Errorf("owner ID too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func ValidateAccountID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("account ID can't be empty")
	}
	return nil
}

// ValidateCurrency accepts any supported currency code, in any case.
// An empty code is allowed and means the configured default.
func ValidateCurrency(code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	if _, err := model.ParseCurrency(code); err != nil {
		return err
	}
	return nil
}

// ValidateAmount checks a movement amount in minor units.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// ValidateInitialBalance allows zero, unlike ValidateAmount.
func ValidateInitialBalance(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("initial balance can't be negative")
	}
	return nil
}

func ValidateDistinctAccounts(from, to string) error {
	if from == to {
		return fmt.Errorf("source and destination accounts must differ")
	}
	return nil
}

func ValidateIdempotencyKey(key string) error {
	if key == "" {
		return nil
	}
	if len(key) > constants.MaxIdempotencyLen {
		return fmt.Errorf("idempotency key too long (max %d characters)", constants.MaxIdempotencyLen)
	}
	for _, r := range key {
		if r < 0x21 || r > 0x7e {
			return fmt.Errorf("idempotency key must be printable ASCII without spaces")
		}
	}
	return nil
}

func ValidateDescription(desc string) error {
	if len(desc) > constants.MaxDescriptionLen {
		return fmt.Errorf("description too long (max %d characters)", constants.MaxDescriptionLen)
	}
	return nil
}

func ValidateReferenceID(ref string) error {
	if len(ref) > constants.MaxReferenceLen {
		return fmt.Errorf("reference ID too long (max %d characters)", constants.MaxReferenceLen)
	}
	return nil
}

func ValidateMetadata(metadata map[string]string) error {
	if len(metadata) > constants.MaxMetadataKeys {
		return fmt.Errorf("too many metadata entries (max %d)", constants.MaxMetadataKeys)
	}
	for k := range metadata {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("metadata keys can't be empty")
		}
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
