// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "github.com/shopspring/decimal"

// Bill is a named expense to be shared. Name is unique within a split.
type Bill struct {
	// Name identifies the bill (e.g. "Rent").
	Name string `json:"name" yaml:"name"`

	// Amount is the positive bill total.
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// Person is a participant in a split. Name is unique within a split.
type Person struct {
	Name string `json:"name" yaml:"name"`
}

// Contribution is one person's share of one bill. Shares of a bill are
// equal and sum to the bill amount.
type Contribution struct {
	Person string          `json:"person" yaml:"person"`
	Bill   string          `json:"bill" yaml:"bill"`
	Share  decimal.Decimal `json:"share" yaml:"share"`
}
