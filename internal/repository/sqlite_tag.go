package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

// NewSQLiteTagRepo creates a new SQLiteTagRepo.
func NewSQLiteTagRepo(conn db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: conn}
}

const tagColumns = `id, kind, name, color, description, created_by, created_at`

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	query := `INSERT INTO tags (` + tagColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, string(t.Kind), t.Name, t.Color, t.Description, t.CreatedBy,
		domain.CoalesceStr(t.CreatedAt, nowUTC()),
	)
	if err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = ?`
	t, err := scanTag(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	return t, nil
}

func (r *SQLiteTagRepo) ListByKind(ctx context.Context, kind domain.EntityKind) ([]*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE kind = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (r *SQLiteTagRepo) Update(ctx context.Context, t *domain.Tag) error {
	query := `UPDATE tags SET name = ?, color = ?, description = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, t.Name, t.Color, t.Description, t.ID)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	return expectAffected(res, "tag "+t.ID)
}

// Delete removes the tag; its assignments go with it through the
// tag_assignments foreign key.
func (r *SQLiteTagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return expectAffected(res, "tag "+id)
}

func scanTag(row rowScanner) (*domain.Tag, error) {
	var t domain.Tag
	var kind string
	if err := row.Scan(&t.ID, &kind, &t.Name, &t.Color, &t.Description, &t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Kind = domain.EntityKind(kind)
	if t.Color == "" {
		t.Color = domain.DefaultTagColor
	}
	return &t, nil
}
