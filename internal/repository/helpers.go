package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crmsheet/internal/domain"
)

// nullableString converts an empty string to SQL NULL for optional
// foreign-key columns.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// stringFromNull returns "" for SQL NULL.
func stringFromNull(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// nowUTC returns the current UTC time in the stored timestamp layout.
func nowUTC() string {
	return domain.FormatTimestamp(time.Now())
}

// expectAffected turns a zero-row update or delete into ErrNotFound.
func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
