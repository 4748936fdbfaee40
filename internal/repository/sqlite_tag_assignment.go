package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// SQLiteTagAssignmentRepo implements TagAssignmentRepo using a SQLite database.
type SQLiteTagAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteTagAssignmentRepo creates a new SQLiteTagAssignmentRepo.
func NewSQLiteTagAssignmentRepo(conn db.DBTX) *SQLiteTagAssignmentRepo {
	return &SQLiteTagAssignmentRepo{db: conn}
}

const tagAssignmentColumns = `id, entity_kind, entity_id, tag_id, assigned_by, assigned_at`

// Create is a no-op when the entity already carries the tag.
func (r *SQLiteTagAssignmentRepo) Create(ctx context.Context, a *domain.TagAssignment) error {
	query := `INSERT INTO tag_assignments (` + tagAssignmentColumns + `) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(entity_kind, entity_id, tag_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, string(a.Entity.Kind), a.Entity.ID, a.TagID, a.AssignedBy,
		domain.CoalesceStr(a.AssignedAt, nowUTC()),
	)
	if err != nil {
		return fmt.Errorf("inserting tag assignment: %w", err)
	}
	return nil
}

func (r *SQLiteTagAssignmentRepo) Delete(ctx context.Context, ref domain.EntityRef, tagID string) error {
	query := `DELETE FROM tag_assignments WHERE entity_kind = ? AND entity_id = ? AND tag_id = ?`
	res, err := r.db.ExecContext(ctx, query, string(ref.Kind), ref.ID, tagID)
	if err != nil {
		return fmt.Errorf("deleting tag assignment: %w", err)
	}
	return expectAffected(res, "tag assignment "+ref.String()+"/"+tagID)
}

func (r *SQLiteTagAssignmentRepo) DeleteByEntity(ctx context.Context, ref domain.EntityRef) error {
	query := `DELETE FROM tag_assignments WHERE entity_kind = ? AND entity_id = ?`
	if _, err := r.db.ExecContext(ctx, query, string(ref.Kind), ref.ID); err != nil {
		return fmt.Errorf("deleting tag assignments of %s: %w", ref, err)
	}
	return nil
}

func (r *SQLiteTagAssignmentRepo) DeleteByTag(ctx context.Context, tagID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tag_assignments WHERE tag_id = ?`, tagID); err != nil {
		return fmt.Errorf("deleting tag assignments of tag %s: %w", tagID, err)
	}
	return nil
}

func (r *SQLiteTagAssignmentRepo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.TagAssignment, error) {
	query := `SELECT ` + tagAssignmentColumns + ` FROM tag_assignments
		WHERE entity_kind = ? AND entity_id = ? ORDER BY rowid`
	return r.query(ctx, query, string(ref.Kind), ref.ID)
}

func (r *SQLiteTagAssignmentRepo) ListByTag(ctx context.Context, tagID string) ([]*domain.TagAssignment, error) {
	query := `SELECT ` + tagAssignmentColumns + ` FROM tag_assignments WHERE tag_id = ? ORDER BY rowid`
	return r.query(ctx, query, tagID)
}

func (r *SQLiteTagAssignmentRepo) query(ctx context.Context, query string, args ...any) ([]*domain.TagAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tag assignments: %w", err)
	}
	defer rows.Close()

	var out []*domain.TagAssignment
	for rows.Next() {
		var a domain.TagAssignment
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.Entity.ID, &a.TagID, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("scanning tag assignment: %w", err)
		}
		a.Entity.Kind = domain.EntityKind(kind)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tag assignments: %w", err)
	}
	return out, nil
}
