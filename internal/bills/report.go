// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bills

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const ruleWidth = 50

// ReportName returns the report file name for a month, e.g. "bill_May.txt".
func ReportName(month string) string {
	return "bill_" + month + ".txt"
}

// DefaultReportDir returns the user's Desktop directory.
func DefaultReportDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, "Desktop"), nil
}

// Render formats an allocation as the plain-text monthly report.
func Render(a *Allocation, month string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BILL SPLITTING REPORT - %s\n", month)
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	b.WriteString("\nBILLS:\n")
	for _, bill := range a.Bills {
		fmt.Fprintf(&b, "%s: %s\n", bill.Name, FormatMoney(bill.Amount))
	}

	b.WriteString("\nCONTRIBUTIONS PER PERSON:\n")
	for _, person := range a.People {
		fmt.Fprintf(&b, "\n%s:\n", person.Name)
		shares := a.SharesFor(person.Name)
		if len(shares) == 0 {
			b.WriteString("No contributions\n")
			continue
		}
		for _, c := range shares {
			fmt.Fprintf(&b, "  %s: %s\n", c.Bill, FormatMoney(c.Share))
		}
		fmt.Fprintf(&b, "TOTAL: %s\n", FormatMoney(a.Total(person.Name)))
	}

	if len(a.Uncovered) > 0 {
		b.WriteString("\nUNCOVERED BILLS:\n")
		for _, name := range a.Uncovered {
			fmt.Fprintf(&b, "%s\n", name)
		}
	}
	return b.String()
}

// WriteReport writes report into dir as bill_<month>.txt, creating dir if
// needed, and returns the file path. An existing report for the same month
// is overwritten.
func WriteReport(fsys afero.Fs, dir, month, report string) (string, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, ReportName(month))
	if err := afero.WriteFile(fsys, path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}
