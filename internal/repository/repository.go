// Package repository implements the domain repositories on top of driver.ITransactionalDB.
//
// Queries use $n placeholders, each referenced once and in order, so the mysql
// and sqlite adapters can rewrite them positionally.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pot-code/coursehub/internal/infrastructure/driver"
)

// withTx runs fn inside a transaction, committed when fn succeeds
func withTx(ctx context.Context, conn driver.ITransactionalDB, fn func(tx driver.ITransactionalDB) error) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()
	return fn(tx)
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	i := int(ni.Int64)
	return &i
}
