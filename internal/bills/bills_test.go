// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bills

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deskkit/internal/prompt"
	"github.com/pdiddy/deskkit/pkg/types"
)

// --- test helpers ---

func scripted(input string) (*prompt.LinePrompter, *bytes.Buffer) {
	var out bytes.Buffer
	return prompt.NewLinePrompter(strings.NewReader(input), &out), &out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "got %s, want %s", got, want)
}

// --- amount ---

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "1000", want: "1000"},
		{in: "$60.50", want: "60.5"},
		{in: " $ 19.99 ", want: "19.99"},
		{in: "0.01", want: "0.01"},
		{in: "abc", wantErr: ErrInvalidAmount},
		{in: "", wantErr: ErrInvalidAmount},
		{in: "0", wantErr: ErrNonPositiveAmount},
		{in: "-5", wantErr: ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assertMoney(t, tt.want, got)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1030.00", FormatMoney(dec("1030")))
	assert.Equal(t, "$33.33", FormatMoney(dec("100").Div(dec("3"))))
}

// --- collection ---

func TestCollect(t *testing.T) {
	p, out := scripted(strings.Join([]string{
		"Rent", "1000",
		"Wifi", "abc", "-5", "60",
		"", // empty name re-prompts
		"Rent", "1200", // replaces Rent in place
		"DONE",
		"Alice", "Bob", "Alice", "",
		"done",
	}, "\n") + "\n")

	bills, people, err := Collect(p)
	require.NoError(t, err)

	require.Len(t, bills, 2)
	assert.Equal(t, "Rent", bills[0].Name)
	assertMoney(t, "1200", bills[0].Amount)
	assert.Equal(t, "Wifi", bills[1].Name)
	assertMoney(t, "60", bills[1].Amount)

	assert.Equal(t, []types.Person{{Name: "Alice"}, {Name: "Bob"}}, people)

	log := out.String()
	assert.Contains(t, log, ErrInvalidAmount.Error())
	assert.Contains(t, log, ErrNonPositiveAmount.Error())
	assert.Contains(t, log, "Alice is already in the list.")
}

func TestCollectNoBills(t *testing.T) {
	p, _ := scripted("done\n")
	_, _, err := Collect(p)
	assert.ErrorIs(t, err, ErrNoBills)
}

func TestCollectNoPeople(t *testing.T) {
	p, _ := scripted("Rent\n100\ndone\ndone\n")
	_, _, err := Collect(p)
	assert.ErrorIs(t, err, ErrNoPeople)
}

func TestCollectInputClosed(t *testing.T) {
	p, _ := scripted("Rent\nnope\n")
	_, _, err := Collect(p)
	assert.ErrorIs(t, err, io.EOF)
}

// --- allocation ---

func scenario() ([]types.Bill, []types.Person) {
	return []types.Bill{
			{Name: "Rent", Amount: dec("1000")},
			{Name: "Wifi", Amount: dec("60")},
		}, []types.Person{
			{Name: "Alice"},
			{Name: "Bob"},
		}
}

func TestAllocateScenario(t *testing.T) {
	bills, people := scenario()
	p, out := scripted("yes\nno\ny\nmaybe\nY\n")

	a, err := Allocate(bills, people, NewPromptDecider(p))
	require.NoError(t, err)

	assertMoney(t, "1030", a.Total("Alice"))
	assertMoney(t, "30", a.Total("Bob"))
	assert.Empty(t, a.Uncovered)
	assertMoney(t, "1060", a.Covered())

	assert.Equal(t, []types.Contribution{
		{Person: "Alice", Bill: "Rent", Share: dec("1000")},
		{Person: "Alice", Bill: "Wifi", Share: dec("30")},
		{Person: "Bob", Bill: "Wifi", Share: dec("30")},
	}, normalize(a.Contributions))

	assert.Contains(t, out.String(), "Bill: Rent ($1000.00)")
	assert.Contains(t, out.String(), "Is Bob contributing to Wifi? (yes/no): ")
	assert.Equal(t, 1, strings.Count(out.String(), "Bill: Wifi"))
}

// normalize rebuilds shares from their string form so that decimals with
// equal values compare equal structurally.
func normalize(cs []types.Contribution) []types.Contribution {
	out := make([]types.Contribution, len(cs))
	for i, c := range cs {
		c.Share = dec(c.Share.String())
		out[i] = c
	}
	return out
}

func TestAllocateSharesSumToAmount(t *testing.T) {
	people := []types.Person{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	bills := []types.Bill{
		{Name: "Power", Amount: dec("100")},
		{Name: "Water", Amount: dec("0.01")},
		{Name: "Gas", Amount: dec("77.77")},
	}
	everyone := SheetDecider{
		"Power": {"A": true, "B": true, "C": true},
		"Water": {"A": true, "B": true, "C": true},
		"Gas":   {"A": true, "C": true},
	}

	a, err := Allocate(bills, people, everyone)
	require.NoError(t, err)

	tolerance := dec("0.000000001")
	for _, b := range bills {
		diff := a.BillShareSum(b.Name).Sub(b.Amount).Abs()
		assert.True(t, diff.LessThan(tolerance), "%s: shares differ from amount by %s", b.Name, diff)
	}
}

func TestAllocateUncoveredBill(t *testing.T) {
	bills, people := scenario()
	d := SheetDecider{"Wifi": {"Bob": true}}

	a, err := Allocate(bills, people, d)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rent"}, a.Uncovered)
	assert.True(t, a.BillShareSum("Rent").IsZero())
	assert.True(t, a.Total("Alice").IsZero())
	assertMoney(t, "60", a.Total("Bob"))
	assertMoney(t, "60", a.Covered())
}

type failingDecider struct{}

func (failingDecider) Contributes(types.Bill, types.Person) (bool, error) {
	return false, errors.New("stdin closed")
}

func TestAllocateDeciderError(t *testing.T) {
	bills, people := scenario()
	_, err := Allocate(bills, people, failingDecider{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin closed")
}

// --- sheet ---

const scenarioSheet = `
people: [Alice, Bob]
bills:
  - name: Rent
    amount: 1000
    contributors: [Alice]
  - name: Wifi
    amount: "$60.00"
    contributors: [Alice, Bob]
`

func TestSheetResolve(t *testing.T) {
	s, err := ParseSheet([]byte(scenarioSheet))
	require.NoError(t, err)

	bills, people, d, err := s.Resolve()
	require.NoError(t, err)
	assert.Len(t, bills, 2)
	assert.Len(t, people, 2)

	a, err := Allocate(bills, people, d)
	require.NoError(t, err)
	assertMoney(t, "1030", a.Total("Alice"))
	assertMoney(t, "30", a.Total("Bob"))
}

func TestSheetResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown contributor",
			yaml:    "people: [Alice]\nbills:\n  - {name: Rent, amount: 10, contributors: [Zed]}\n",
			wantErr: `unknown contributor "Zed"`,
		},
		{
			name:    "duplicate bill",
			yaml:    "people: [Alice]\nbills:\n  - {name: Rent, amount: 10}\n  - {name: Rent, amount: 20}\n",
			wantErr: `duplicate bill "Rent"`,
		},
		{
			name:    "duplicate person",
			yaml:    "people: [Alice, Alice]\nbills:\n  - {name: Rent, amount: 10}\n",
			wantErr: `duplicate person "Alice"`,
		},
		{
			name:    "non-positive amount",
			yaml:    "people: [Alice]\nbills:\n  - {name: Rent, amount: 0}\n",
			wantErr: ErrNonPositiveAmount.Error(),
		},
		{
			name:    "amount is a list",
			yaml:    "people: [Alice]\nbills:\n  - {name: Rent, amount: [1]}\n",
			wantErr: "amount must be a number",
		},
		{
			name:    "no bills",
			yaml:    "people: [Alice]\n",
			wantErr: ErrNoBills.Error(),
		},
		{
			name:    "no people",
			yaml:    "bills:\n  - {name: Rent, amount: 5}\n",
			wantErr: ErrNoPeople.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSheet([]byte(tt.yaml))
			if err == nil {
				_, _, _, err = s.Resolve()
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// --- report ---

func TestRender(t *testing.T) {
	bills, people := scenario()
	bills = append(bills, types.Bill{Name: "Gym", Amount: dec("45")})
	people = append(people, types.Person{Name: "Carol"})
	d := SheetDecider{
		"Rent": {"Alice": true},
		"Wifi": {"Alice": true, "Bob": true},
	}
	a, err := Allocate(bills, people, d)
	require.NoError(t, err)

	want := `BILL SPLITTING REPORT - March
==================================================

BILLS:
Rent: $1000.00
Wifi: $60.00
Gym: $45.00

CONTRIBUTIONS PER PERSON:

Alice:
  Rent: $1000.00
  Wifi: $30.00
TOTAL: $1030.00

Bob:
  Wifi: $30.00
TOTAL: $30.00

Carol:
No contributions

UNCOVERED BILLS:
Gym
`
	assert.Equal(t, want, Render(a, "March"))
}

func TestWriteReport(t *testing.T) {
	fsys := afero.NewMemMapFs()

	path, err := WriteReport(fsys, "/home/u/Desktop", "May", "first")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/Desktop/bill_May.txt", path)

	_, err = WriteReport(fsys, "/home/u/Desktop", "May", "second")
	require.NoError(t, err)

	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriteReportReadOnlyFs(t *testing.T) {
	fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
	_, err := WriteReport(fsys, "/desk", "May", "x")
	assert.Error(t, err)
}
