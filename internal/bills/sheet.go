// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bills

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deskkit/pkg/types"
)

// Sheet is the on-disk form of a split: the people involved and, for each
// bill, who contributes to it. It replaces the interactive questions when a
// split is run from a file.
//
//	people: [Alice, Bob]
//	bills:
//	  - name: Rent
//	    amount: 1000
//	    contributors: [Alice]
type Sheet struct {
	People []string     `yaml:"people"`
	Bills  []SheetEntry `yaml:"bills"`
}

// SheetEntry is one bill of a Sheet.
type SheetEntry struct {
	Name         string      `yaml:"name"`
	Amount       sheetAmount `yaml:"amount"`
	Contributors []string    `yaml:"contributors"`
}

// sheetAmount keeps the literal scalar text so that amounts are parsed as
// decimals, never through float64.
type sheetAmount string

func (a *sheetAmount) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a number", n.Line)
	}
	*a = sheetAmount(n.Value)
	return nil
}

// LoadSheet reads and parses a YAML sheet.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return ParseSheet(data)
}

// ParseSheet parses YAML sheet data.
func ParseSheet(data []byte) (*Sheet, error) {
	var s Sheet
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing sheet: %w", err)
	}
	return &s, nil
}

// Resolve validates the sheet and returns its bills, its people and a
// Decider answering from the contributor lists.
func (s *Sheet) Resolve() ([]types.Bill, []types.Person, Decider, error) {
	people := make([]types.Person, 0, len(s.People))
	known := make(map[string]bool, len(s.People))
	for _, name := range s.People {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil, nil, fmt.Errorf("sheet: empty person name")
		}
		if known[name] {
			return nil, nil, nil, fmt.Errorf("sheet: duplicate person %q", name)
		}
		known[name] = true
		people = append(people, types.Person{Name: name})
	}

	bills := make([]types.Bill, 0, len(s.Bills))
	decider := SheetDecider{}
	for _, entry := range s.Bills {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, nil, nil, fmt.Errorf("sheet: bill without a name")
		}
		if _, dup := decider[name]; dup {
			return nil, nil, nil, fmt.Errorf("sheet: duplicate bill %q", name)
		}
		amount, err := ParseAmount(string(entry.Amount))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sheet: bill %q: %w", name, err)
		}

		contributors := make(map[string]bool, len(entry.Contributors))
		for _, c := range entry.Contributors {
			c = strings.TrimSpace(c)
			if !known[c] {
				return nil, nil, nil, fmt.Errorf("sheet: bill %q: unknown contributor %q", name, c)
			}
			contributors[c] = true
		}
		decider[name] = contributors
		bills = append(bills, types.Bill{Name: name, Amount: amount})
	}

	if len(bills) == 0 {
		return nil, nil, nil, ErrNoBills
	}
	if len(people) == 0 {
		return nil, nil, nil, ErrNoPeople
	}
	return bills, people, decider, nil
}

// SheetDecider answers from a fixed bill → contributor set mapping.
type SheetDecider map[string]map[string]bool

// Contributes reports whether person is listed for bill.
func (d SheetDecider) Contributes(bill types.Bill, person types.Person) (bool, error) {
	return d[bill.Name][person.Name], nil
}
