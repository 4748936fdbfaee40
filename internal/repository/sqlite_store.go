package repository

import (
	"context"

	"github.com/alexanderramin/crmsheet/internal/db"
)

// NewSQLiteStore builds a Store whose repositories all run on conn, which
// may be the database or an open transaction.
func NewSQLiteStore(conn db.DBTX) Store {
	return Store{
		Companies:      NewSQLiteCompanyRepo(conn),
		Contacts:       NewSQLiteContactRepo(conn),
		Activities:     NewSQLiteActivityRepo(conn),
		History:        NewSQLiteHistoryRepo(conn),
		Tags:           NewSQLiteTagRepo(conn),
		TagAssignments: NewSQLiteTagAssignmentRepo(conn),
		Profiles:       NewSQLiteUserProfileRepo(conn),
	}
}

// SQLiteTransactor implements Transactor on top of a db.UnitOfWork.
type SQLiteTransactor struct {
	uow db.UnitOfWork
}

// NewSQLiteTransactor creates a Transactor handing out tx-scoped stores.
func NewSQLiteTransactor(uow db.UnitOfWork) *SQLiteTransactor {
	return &SQLiteTransactor{uow: uow}
}

func (t *SQLiteTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewSQLiteStore(tx))
	})
}
