package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"companies", "contacts", "activities", "history", "tags", "tag_assignments", "user_profiles"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_contacts_company",
		"idx_activities_company",
		"idx_activities_contact",
		"idx_activities_status",
		"idx_history_entity",
		"idx_tags_kind_name",
		"idx_tag_assignments_entity",
		"idx_tag_assignments_tag",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ActivityStatusConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO activities (id, type, title, date, status, created_at)
		VALUES ('a1', 'EMAIL', 't', '2025-01-01', 'bogus', '2025-01-01')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO activities (id, type, title, date, created_at)
		VALUES ('a2', 'FAX', 't', '2025-01-01', '2025-01-01')`)
	assert.Error(t, err)
}

func TestMigrate_DeletingCompanyNullsContactLink(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO companies (id, name, created_at, updated_at) VALUES ('c1', 'Acme', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO contacts (id, company_id, name, created_at, updated_at) VALUES ('p1', 'c1', 'Jan', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM companies WHERE id = 'c1'`)
	require.NoError(t, err)

	var companyID sql.NullString
	require.NoError(t, db.QueryRow(`SELECT company_id FROM contacts WHERE id = 'p1'`).Scan(&companyID))
	assert.False(t, companyID.Valid)
}

func TestMigrate_CompaniesCarryDomain(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO companies (id, name, domain, created_at, updated_at) VALUES ('c1', 'Acme', 'acme.com', 'x', 'x')`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var domain, website string
	require.NoError(t, db.QueryRow(`SELECT domain, website FROM companies WHERE id = 'c1'`).Scan(&domain, &website))
	assert.Equal(t, "acme.com", domain)
	assert.Equal(t, "", website, "migrations never rewrite rows")
}
