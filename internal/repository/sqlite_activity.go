package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, type, title, date, notes, company_id, contact_id, status, created_by, created_at, completed_at`

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, string(a.Type), a.Title, a.Date, a.Notes, a.CompanyID, a.ContactID,
		string(a.Status), a.CreatedBy, domain.CoalesceStr(a.CreatedAt, nowUTC()), a.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	return a, nil
}

func (r *SQLiteActivityRepo) List(ctx context.Context) ([]*domain.Activity, error) {
	return r.query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY rowid`)
}

func (r *SQLiteActivityRepo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]*domain.Activity, error) {
	var column string
	switch ref.Kind {
	case domain.KindCompany:
		column = "company_id"
	case domain.KindContact:
		column = "contact_id"
	default:
		return nil, fmt.Errorf("unknown entity kind %q", ref.Kind)
	}
	return r.query(ctx, `SELECT `+activityColumns+` FROM activities WHERE `+column+` = ? ORDER BY rowid`, ref.ID)
}

func (r *SQLiteActivityRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET type = ?, title = ?, date = ?, notes = ?, company_id = ?, contact_id = ?,
		status = ?, completed_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(a.Type), a.Title, a.Date, a.Notes, a.CompanyID, a.ContactID,
		string(a.Status), a.CompletedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return expectAffected(res, "activity "+a.ID)
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return expectAffected(res, "activity "+id)
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var typ, status string
	err := row.Scan(&a.ID, &typ, &a.Title, &a.Date, &a.Notes, &a.CompanyID, &a.ContactID,
		&status, &a.CreatedBy, &a.CreatedAt, &a.CompletedAt)
	if err != nil {
		return nil, err
	}
	a.Type = domain.ActivityType(typ)
	a.Status = domain.ActivityStatus(status)
	return &a, nil
}
