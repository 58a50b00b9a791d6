package model

import (
	"fmt"
	"strings"
)

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	TWD Currency = "TWD"
	TZS Currency = "TZS"
)

// exponents maps each supported currency to the number of decimal places
// of its minor unit.
var exponents = map[Currency]int32{
	USD: 2,
	EUR: 2,
	GBP: 2,
	JPY: 0,
	TWD: 2,
	TZS: 2,
}

// Currencies returns the supported currency codes in a stable order.
func Currencies() []Currency {
	return []Currency{USD, EUR, GBP, JPY, TWD, TZS}
}

// ParseCurrency normalizes a code and checks it against the supported set.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := exponents[c]; !ok {
		return "", fmt.Errorf("unsupported currency %q", code)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	_, ok := exponents[c]
	return ok
}

// Exponent is the number of minor-unit digits, e.g. 2 for USD cents.
func (c Currency) Exponent() int32 {
	return exponents[c]
}

func (c Currency) String() string {
	return string(c)
}
