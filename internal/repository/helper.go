package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timestampLayouts are the formats a stored timestamp may come back in:
// values written by this package, SQLite's CURRENT_TIMESTAMP, and plain dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a stored timestamp in any of the supported layouts.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// formatTime renders a timestamp the way this package stores it.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
