package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
)

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	db db.DBTX
}

// NewSQLiteCompanyRepo creates a new SQLiteCompanyRepo.
func NewSQLiteCompanyRepo(conn db.DBTX) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{db: conn}
}

const companyColumns = `id, name, industry, notes, website, phone, city, country, domain`

func (r *SQLiteCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	now := nowUTC()
	query := `INSERT INTO companies (` + companyColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Industry, c.Notes, c.Website, c.Phone, c.City, c.Country, c.Domain,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

func (r *SQLiteCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = ?`
	c, err := scanCompany(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	return c, nil
}

func (r *SQLiteCompanyRepo) List(ctx context.Context) ([]*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return companies, nil
}

func (r *SQLiteCompanyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies SET name = ?, industry = ?, notes = ?, website = ?, phone = ?,
		city = ?, country = ?, domain = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Industry, c.Notes, c.Website, c.Phone, c.City, c.Country, c.Domain,
		nowUTC(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	return expectAffected(res, "company "+c.ID)
}

func (r *SQLiteCompanyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	return expectAffected(res, "company "+id)
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Notes, &c.Website, &c.Phone, &c.City, &c.Country, &c.Domain)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
