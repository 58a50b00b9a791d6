package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/ledger/internal/model"
)

// FormatMinor renders a minor-unit amount in major units, e.g. 1250 USD -> "12.50".
func FormatMinor(amount int64, currency model.Currency) string {
	exp := currency.Exponent()
	return decimal.New(amount, -exp).StringFixed(exp)
}

// FormatMoney is FormatMinor followed by the currency code.
func FormatMoney(amount int64, currency model.Currency) string {
	return fmt.Sprintf("%s %s", FormatMinor(amount, currency), currency)
}

// ParseMinor converts a major-unit string such as "12.5" into minor units.
// Digits beyond the currency's precision are rejected, not rounded.
func ParseMinor(amountStr string, currency model.Currency) (int64, error) {
	amountStr = strings.TrimSpace(strings.ReplaceAll(amountStr, ",", ""))
	if amountStr == "" {
		return 0, fmt.Errorf("amount can't be empty")
	}

	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}

	exp := currency.Exponent()
	minor := d.Shift(exp)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, fmt.Errorf("%s allows at most %d decimal places: %s", currency, exp, amountStr)
	}
	if minor.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || minor.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, fmt.Errorf("amount too large: %s", amountStr)
	}
	return minor.IntPart(), nil
}
