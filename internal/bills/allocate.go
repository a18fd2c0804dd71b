// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bills splits shared bills between people. Every bill is divided
// evenly among the people who contribute to it; a bill nobody contributes to
// is reported as uncovered and allocates nothing. Amounts are decimals, so
// the shares of a bill add back up to its amount.
package bills

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/deskkit/internal/prompt"
	"github.com/pdiddy/deskkit/pkg/types"
)

// Decider answers whether a person contributes to a bill.
type Decider interface {
	Contributes(bill types.Bill, person types.Person) (bool, error)
}

// PromptDecider asks the user about every bill and person pair.
type PromptDecider struct {
	p        prompt.Prompter
	lastBill string
}

// NewPromptDecider returns a Decider backed by p.
func NewPromptDecider(p prompt.Prompter) *PromptDecider {
	return &PromptDecider{p: p}
}

// Contributes asks a yes/no question, announcing each new bill first.
func (d *PromptDecider) Contributes(bill types.Bill, person types.Person) (bool, error) {
	if bill.Name != d.lastBill {
		d.lastBill = bill.Name
		d.p.Say(fmt.Sprintf("\nBill: %s (%s)", bill.Name, FormatMoney(bill.Amount)))
	}
	return prompt.AskYesNo(d.p, fmt.Sprintf("Is %s contributing to %s? (yes/no): ", person.Name, bill.Name))
}

// Allocation is the result of splitting a set of bills.
type Allocation struct {
	Bills         []types.Bill
	People        []types.Person
	Contributions []types.Contribution // bill order, then person order
	Uncovered     []string             // bills without contributors
}

// Allocate asks d about every person for every bill and divides each bill
// evenly among its contributors.
func Allocate(bills []types.Bill, people []types.Person, d Decider) (*Allocation, error) {
	a := &Allocation{Bills: bills, People: people}
	for _, bill := range bills {
		var contributors []types.Person
		for _, person := range people {
			yes, err := d.Contributes(bill, person)
			if err != nil {
				return nil, fmt.Errorf("asking about %s for %s: %w", person.Name, bill.Name, err)
			}
			if yes {
				contributors = append(contributors, person)
			}
		}

		if len(contributors) == 0 {
			a.Uncovered = append(a.Uncovered, bill.Name)
			continue
		}

		share := bill.Amount.Div(decimal.NewFromInt(int64(len(contributors))))
		for _, person := range contributors {
			a.Contributions = append(a.Contributions, types.Contribution{
				Person: person.Name,
				Bill:   bill.Name,
				Share:  share,
			})
		}
	}
	return a, nil
}

// SharesFor returns person's contributions in bill order.
func (a *Allocation) SharesFor(person string) []types.Contribution {
	var out []types.Contribution
	for _, c := range a.Contributions {
		if c.Person == person {
			out = append(out, c)
		}
	}
	return out
}

// Total returns the sum of person's shares.
func (a *Allocation) Total(person string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range a.SharesFor(person) {
		total = total.Add(c.Share)
	}
	return total
}

// BillShareSum returns the sum of all shares recorded for bill.
func (a *Allocation) BillShareSum(bill string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range a.Contributions {
		if c.Bill == bill {
			total = total.Add(c.Share)
		}
	}
	return total
}

// Covered returns the sum of the amounts of bills that have contributors.
func (a *Allocation) Covered() decimal.Decimal {
	uncovered := make(map[string]bool, len(a.Uncovered))
	for _, name := range a.Uncovered {
		uncovered[name] = true
	}
	total := decimal.Zero
	for _, b := range a.Bills {
		if !uncovered[b.Name] {
			total = total.Add(b.Amount)
		}
	}
	return total
}
