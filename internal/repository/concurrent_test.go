package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/crmsheet/internal/db"
	"github.com/alexanderramin/crmsheet/internal/domain"
	"github.com/alexanderramin/crmsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringWrite verifies that listing companies and
// their history while a single writer appends never yields half-written rows.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	store := NewSQLiteStore(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			c := testutil.NewTestCompany(fmt.Sprintf("Company-%d", i))
			if err := store.Companies.Create(ctx, c); err != nil {
				t.Errorf("writer: create company %d: %v", i, err)
				return
			}
			ev := testutil.NewTestEvent(domain.CompanyRef(c.ID), "Company created", "")
			if err := store.History.Create(ctx, ev); err != nil {
				t.Errorf("writer: create event %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				companies, err := store.Companies.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list companies: %v", reader, err)
					return
				}
				for _, c := range companies {
					if c.ID == "" || c.Name == "" {
						t.Errorf("reader %d: got company with empty fields", reader)
					}
				}
				if _, err := store.History.ListByKind(ctx, domain.KindCompany); err != nil {
					t.Errorf("reader %d: list history: %v", reader, err)
					return
				}
			}
		}(r)
	}

	wg.Wait()

	companies, err := store.Companies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 20)
}
