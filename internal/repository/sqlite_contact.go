package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// SQLiteContactRepo implements ContactRepo using a SQLite database.
type SQLiteContactRepo struct {
	db db.DBTX
}

// NewSQLiteContactRepo creates a new SQLiteContactRepo.
func NewSQLiteContactRepo(conn db.DBTX) *SQLiteContactRepo {
	return &SQLiteContactRepo{db: conn}
}

const contactColumns = `id, company_id, name, position, email, phone`

func (r *SQLiteContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	now := nowUTC()
	query := `INSERT INTO contacts (` + contactColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, nullableString(c.CompanyID), c.Name, c.Position, c.Email, c.Phone, now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	c, err := scanContact(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	return c, nil
}

func (r *SQLiteContactRepo) List(ctx context.Context) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at, rowid`
	return r.query(ctx, query)
}

func (r *SQLiteContactRepo) ListByCompany(ctx context.Context, companyID string) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE company_id = ? ORDER BY created_at, rowid`
	return r.query(ctx, query, companyID)
}

func (r *SQLiteContactRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return contacts, nil
}

func (r *SQLiteContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	query := `UPDATE contacts SET company_id = ?, name = ?, position = ?, email = ?, phone = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(c.CompanyID), c.Name, c.Position, c.Email, c.Phone, nowUTC(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	return expectAffected(res, "contact "+c.ID)
}

func (r *SQLiteContactRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return expectAffected(res, "contact "+id)
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var c domain.Contact
	var companyID sql.NullString
	if err := row.Scan(&c.ID, &companyID, &c.Name, &c.Position, &c.Email, &c.Phone); err != nil {
		return nil, err
	}
	c.CompanyID = stringFromNull(companyID)
	return &c, nil
}
