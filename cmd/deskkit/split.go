// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deskkit/internal/bills"
	"github.com/pdiddy/deskkit/internal/ledger"
	"github.com/pdiddy/deskkit/internal/opener"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split monthly bills among the people who share them",
	Long: `Split asks for this month's bills, the people in the household, and
who contributes to each bill. Every bill is divided evenly among its
contributors. The report is saved as bill_<Month>.txt in the report
directory (the Desktop by default) and opened with the default viewer.

Use --sheet to read bills, people and contributors from a YAML file instead
of answering prompts. Each split is also recorded in a local history
database; see "deskkit split history".`,
	Args: cobra.NoArgs,
	RunE: runSplit,
}

func runSplit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	banner(out, "Monthly Bill Splitter", "Divides each bill evenly among the people contributing to it.")

	allocation, err := allocate(cmd)
	if errors.Is(err, bills.ErrNoBills) || errors.Is(err, bills.ErrNoPeople) {
		warn(out, "%s. Exiting.", capitalize(err.Error()))
		return nil
	}
	if err != nil {
		return err
	}
	for _, name := range allocation.Uncovered {
		logger.Warn("no one is contributing", "bill", name)
	}

	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		month = time.Now().Format("January")
	}

	dir := cfg.Split.ReportDir
	if dir == "" {
		if dir, err = bills.DefaultReportDir(); err != nil {
			return err
		}
	}
	path, err := bills.WriteReport(afero.NewOsFs(), dir, month, bills.Render(allocation, month))
	if err != nil {
		return err
	}

	summary(out, "Report", totalsBody(allocation))
	success(out, "Report saved to %s", path)

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		recordSplit(cmd.Context(), month, allocation)
	}
	if noOpen, _ := cmd.Flags().GetBool("no-open"); cfg.Split.Open && !noOpen {
		openReport(path)
	}
	return nil
}

// allocate builds the split from the sheet when one is given, and from
// prompts otherwise.
func allocate(cmd *cobra.Command) (*bills.Allocation, error) {
	if sheetPath, _ := cmd.Flags().GetString("sheet"); sheetPath != "" {
		sheet, err := bills.LoadSheet(sheetPath)
		if err != nil {
			return nil, err
		}
		bs, people, decider, err := sheet.Resolve()
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheetPath, err)
		}
		return bills.Allocate(bs, people, decider)
	}

	p := prompter(cmd)
	bs, people, err := bills.Collect(p)
	if err != nil {
		return nil, err
	}

	p.Say("\nAssign people to bills:")
	return bills.Allocate(bs, people, bills.NewPromptDecider(p))
}

// totalsBody lists each person's total, one per line.
func totalsBody(a *bills.Allocation) string {
	var b strings.Builder
	for i, person := range a.People {
		if i > 0 {
			b.WriteString("\n")
		}
		if len(a.SharesFor(person.Name)) == 0 {
			fmt.Fprintf(&b, "%s: no contributions", person.Name)
			continue
		}
		fmt.Fprintf(&b, "%s: %s", person.Name, bills.FormatMoney(a.Total(person.Name)))
	}
	if len(a.Uncovered) > 0 {
		fmt.Fprintf(&b, "\nUncovered: %s", strings.Join(a.Uncovered, ", "))
	}
	return b.String()
}

// recordSplit saves the split to the history database. The report is
// already on disk, so a failure here is only a warning.
func recordSplit(ctx context.Context, month string, a *bills.Allocation) {
	store, err := openLedger()
	if err != nil {
		logger.Warn("split history unavailable", "err", err)
		return
	}
	defer store.Close()

	entry, err := store.Record(ctx, month, a, time.Now())
	if err != nil {
		logger.Warn("failed to record split", "err", err)
		return
	}
	logger.Debug("recorded split", "id", entry.ID)
}

// openReport shows the report with the desktop's default viewer, warning
// when no viewer can be launched.
func openReport(path string) {
	op, err := opener.Detect()
	if err != nil {
		logger.Warn("cannot open report", "err", err)
		return
	}
	if err := op.Open(path); err != nil {
		logger.Warn("cannot open report", "err", err)
	}
}

func openLedger() (*ledger.Store, error) {
	path := cfg.Split.HistoryDB
	if path == "" {
		var err error
		if path, err = ledger.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return ledger.Open(path)
}

// --- history subcommand ---

var splitHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded bill splits",
	Long: `History lists the most recent splits recorded by "deskkit split",
newest first, with each person's total.`,
	Args: cobra.NoArgs,
	RunE: runSplitHistory,
}

func runSplitHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []ledger.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []ledger.Entry{}
		}
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No splits recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-16s  %-12s  %s\n", "Month", "Recorded", "Covered", "Totals")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		totals := make([]string, len(e.Totals))
		for i, t := range e.Totals {
			totals[i] = t.Person + " " + bills.FormatMoney(t.Total)
		}
		fmt.Fprintf(w, "%-10s  %-16s  %-12s  %s\n",
			e.Month, e.CreatedAt.Local().Format("2006-01-02 15:04"), bills.FormatMoney(e.Covered), strings.Join(totals, ", "))
	}
	fmt.Fprintf(w, "\n%d splits\n", len(entries))
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func init() {
	splitCmd.PersistentFlags().String("history-db", "", "split history database (default: ~/.config/deskkit/history.db)")

	splitCmd.Flags().String("sheet", "", "YAML sheet of bills, people and contributors; skips the prompts")
	splitCmd.Flags().String("report-dir", "", "directory for the report file (default: ~/Desktop)")
	splitCmd.Flags().String("month", "", "month name used in the report title and file name (default: current month)")
	splitCmd.Flags().Bool("no-open", false, "do not open the report after saving it")
	splitCmd.Flags().Bool("no-history", false, "do not record this split in the history database")

	splitHistoryCmd.Flags().Int("limit", 12, "maximum number of splits to list")
	splitHistoryCmd.Flags().Bool("json", false, "output history as JSON")

	viper.BindPFlag("split.report_dir", splitCmd.Flags().Lookup("report-dir"))
	viper.BindPFlag("split.history_db", splitCmd.PersistentFlags().Lookup("history-db"))

	splitCmd.AddCommand(splitHistoryCmd)
	rootCmd.AddCommand(splitCmd)
}
