package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertCompany(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO companies (id, name, created_at, updated_at) VALUES (?, ?, 'x', 'x')`, id, name)
	return err
}

func insertHistory(ctx context.Context, tx db.DBTX, id, companyID, typ, content string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO history (id, entity_kind, entity_id, type, timestamp, content)
		VALUES (?, 'company', ?, ?, '2025-06-10T09:30:00.000Z', ?)`, id, companyID, typ, content)
	return err
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestWithinTx_CommitsCompanyAndEvent(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertCompany(ctx, tx, "c1", "Acme"); err != nil {
			return err
		}
		return insertHistory(ctx, tx, "h1", "c1", "event", "Company created")
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, database, "companies"))
	assert.Equal(t, 1, countRows(t, database, "history"))
}

func TestWithinTx_FailedHistoryWriteRollsBackCompany(t *testing.T) {
	database, uow := openUoW(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertCompany(ctx, tx, "c1", "Acme"); err != nil {
			return err
		}
		// Rejected by the history type check.
		return insertHistory(ctx, tx, "h1", "c1", "memo", "Company created")
	})
	require.Error(t, err)

	assert.Equal(t, 0, countRows(t, database, "companies"))
	assert.Equal(t, 0, countRows(t, database, "history"))
}

func TestWithinTx_ReturnsCallbackError(t *testing.T) {
	database, uow := openUoW(t)
	errDeclined := errors.New("declined")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCompany(ctx, tx, "c1", "Acme"); err != nil {
			return err
		}
		return errDeclined
	})
	assert.ErrorIs(t, err, errDeclined)
	assert.Equal(t, 0, countRows(t, database, "companies"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertCompany(ctx, tx, "c1", "Acme")
			panic("boom")
		})
	})

	assert.Equal(t, 0, countRows(t, database, "companies"))
}
