// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bills

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/deskkit/internal/prompt"
	"github.com/pdiddy/deskkit/pkg/types"
)

// doneWord ends a list entry loop. It is matched without regard to case.
const doneWord = "done"

var (
	// ErrNoBills reports that the bill loop ended without any bill.
	ErrNoBills = errors.New("no bills entered")
	// ErrNoPeople reports that the people loop ended without anyone.
	ErrNoPeople = errors.New("no people entered")
)

// Collect asks for the bills and then the people of a split.
func Collect(p prompt.Prompter) ([]types.Bill, []types.Person, error) {
	p.Say("Enter bills and their amounts (enter 'done' when finished):")
	bills, err := CollectBills(p)
	if err != nil {
		return nil, nil, err
	}
	if len(bills) == 0 {
		return nil, nil, ErrNoBills
	}

	p.Say("\nEnter names of people (enter 'done' when finished):")
	people, err := CollectPeople(p)
	if err != nil {
		return nil, nil, err
	}
	if len(people) == 0 {
		return nil, nil, ErrNoPeople
	}
	return bills, people, nil
}

// CollectBills asks for bill names and amounts until the user types done.
// Entering an existing name again replaces that bill's amount in place.
func CollectBills(p prompt.Prompter) ([]types.Bill, error) {
	var bills []types.Bill
	index := make(map[string]int)
	for {
		name, err := p.Ask("Enter bill name (or 'done' to finish): ")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, doneWord) {
			return bills, nil
		}
		if name == "" {
			p.Warn("Bill name cannot be empty.")
			continue
		}

		amount, err := prompt.AskUntil(p, fmt.Sprintf("Enter amount for %s: $", name), ParseAmount)
		if err != nil {
			return nil, err
		}

		if i, ok := index[name]; ok {
			bills[i].Amount = amount
			continue
		}
		index[name] = len(bills)
		bills = append(bills, types.Bill{Name: name, Amount: amount})
	}
}

// CollectPeople asks for names until the user types done. Names must be
// unique and non-empty.
func CollectPeople(p prompt.Prompter) ([]types.Person, error) {
	var people []types.Person
	seen := make(map[string]bool)
	for {
		name, err := p.Ask("Enter person's name (or 'done' to finish): ")
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, doneWord) {
			return people, nil
		}
		if name == "" {
			p.Warn("Name cannot be empty.")
			continue
		}
		if seen[name] {
			p.Warn(fmt.Sprintf("%s is already in the list.", name))
			continue
		}
		seen[name] = true
		people = append(people, types.Person{Name: name})
	}
}
