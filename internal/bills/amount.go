// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bills

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount reports an amount that is not a number.
	ErrInvalidAmount = errors.New("invalid amount, please enter a number")
	// ErrNonPositiveAmount reports an amount of zero or less.
	ErrNonPositiveAmount = errors.New("amount must be greater than 0")
)

// ParseAmount parses a bill amount such as "1200", "$60.50" or " 19.99 ".
// The amount must be greater than zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	return d, nil
}

// FormatMoney renders d with a dollar sign and two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
