// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a history of bill splits in SQLite so that earlier
// months can be listed after their report files are gone. Amounts are
// stored as decimal strings and summed in Go, never in SQL.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/deskkit/internal/bills"
)

const (
	dbFile       = "history.db"
	defaultLimit = 12
)

// Store manages the split history database.
type Store struct {
	db *sql.DB
}

// PersonTotal is one person's total within a recorded split.
type PersonTotal struct {
	Person string          `json:"person" yaml:"person"`
	Total  decimal.Decimal `json:"total" yaml:"total"`
}

// Entry is one recorded split.
type Entry struct {
	ID        string          `json:"id" yaml:"id"`
	Month     string          `json:"month" yaml:"month"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Covered   decimal.Decimal `json:"covered" yaml:"covered"`
	Totals    []PersonTotal   `json:"totals" yaml:"totals"`
	Uncovered []string        `json:"uncovered,omitempty" yaml:"uncovered,omitempty"`
}

// DefaultPath returns history.db under the user's deskkit config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "deskkit", dbFile), nil
}

// Open opens or creates the history database at path and its schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS splits (
			id TEXT PRIMARY KEY,
			month TEXT NOT NULL,
			created_at TEXT NOT NULL,
			covered TEXT NOT NULL,
			uncovered TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS shares (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			split_id TEXT NOT NULL REFERENCES splits(id) ON DELETE CASCADE,
			person TEXT NOT NULL,
			bill TEXT NOT NULL,
			share TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shares_split_id ON shares(split_id)`,
		`CREATE INDEX IF NOT EXISTS idx_splits_created_at ON splits(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores an allocation for month in one transaction and returns the
// resulting entry.
func (s *Store) Record(ctx context.Context, month string, a *bills.Allocation, at time.Time) (Entry, error) {
	uncovered, err := json.Marshal(a.Uncovered)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding uncovered bills: %w", err)
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Month:     month,
		CreatedAt: at.UTC().Truncate(time.Second),
		Covered:   a.Covered(),
		Totals:    totals(a),
		Uncovered: a.Uncovered,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO splits (id, month, created_at, covered, uncovered) VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Month, entry.CreatedAt.Format(time.RFC3339), entry.Covered.String(), string(uncovered),
	); err != nil {
		return Entry{}, fmt.Errorf("inserting split: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO shares (split_id, person, bill, share) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return Entry{}, fmt.Errorf("preparing share insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range a.Contributions {
		if _, err := stmt.ExecContext(ctx, entry.ID, c.Person, c.Bill, c.Share.String()); err != nil {
			return Entry{}, fmt.Errorf("inserting share for %s/%s: %w", c.Person, c.Bill, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("committing split: %w", err)
	}
	return entry, nil
}

// List returns up to limit recorded splits, newest first. A limit of zero
// or less uses the default of 12.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, month, created_at, covered, uncovered FROM splits
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying splits: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                             Entry
			createdAt, covered, uncovered string
		)
		if err := rows.Scan(&e.ID, &e.Month, &createdAt, &covered, &uncovered); err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
		}
		if e.Covered, err = decimal.NewFromString(covered); err != nil {
			return nil, fmt.Errorf("parsing covered amount of %s: %w", e.ID, err)
		}
		if uncovered != "" {
			if err := json.Unmarshal([]byte(uncovered), &e.Uncovered); err != nil {
				return nil, fmt.Errorf("parsing uncovered bills of %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating splits: %w", err)
	}

	for i := range entries {
		t, err := s.personTotals(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Totals = t
	}
	return entries, nil
}

func (s *Store) personTotals(ctx context.Context, splitID string) ([]PersonTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person, share FROM shares WHERE split_id = ? ORDER BY seq`, splitID)
	if err != nil {
		return nil, fmt.Errorf("querying shares of %s: %w", splitID, err)
	}
	defer rows.Close()

	var out []PersonTotal
	index := make(map[string]int)
	for rows.Next() {
		var person, share string
		if err := rows.Scan(&person, &share); err != nil {
			return nil, fmt.Errorf("scanning share: %w", err)
		}
		d, err := decimal.NewFromString(share)
		if err != nil {
			return nil, fmt.Errorf("parsing share %q: %w", share, err)
		}
		i, ok := index[person]
		if !ok {
			i = len(out)
			index[person] = i
			out = append(out, PersonTotal{Person: person, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(d)
	}
	return out, rows.Err()
}

// totals returns per-person totals in people order, skipping people with
// no shares.
func totals(a *bills.Allocation) []PersonTotal {
	var out []PersonTotal
	for _, p := range a.People {
		if len(a.SharesFor(p.Name)) == 0 {
			continue
		}
		out = append(out, PersonTotal{Person: p.Name, Total: a.Total(p.Name)})
	}
	return out
}
