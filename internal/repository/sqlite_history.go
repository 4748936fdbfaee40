package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

const historyColumns = `id, entity_kind, entity_id, type, timestamp, author, content, meta`

func (r *SQLiteHistoryRepo) Create(ctx context.Context, e *domain.HistoryEntry) error {
	query := `INSERT INTO history (` + historyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, string(e.Entity.Kind), e.Entity.ID, string(e.Type),
		domain.CoalesceStr(e.Timestamp, nowUTC()), e.Author, e.Content, e.Meta,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE entity_kind = ? AND entity_id = ? ORDER BY rowid`
	return r.query(ctx, query, string(ref.Kind), ref.ID)
}

func (r *SQLiteHistoryRepo) ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.HistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM history WHERE entity_kind = ? ORDER BY rowid`
	return r.query(ctx, query, string(kind))
}

func (r *SQLiteHistoryRepo) query(ctx context.Context, query string, args ...any) ([]*domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var kind, typ string
		if err := rows.Scan(&e.ID, &kind, &e.Entity.ID, &typ, &e.Timestamp, &e.Author, &e.Content, &e.Meta); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Entity.Kind = domain.EntityKind(kind)
		e.Type = domain.HistoryType(typ)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}
