package driver

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"modernc.org/sqlite"
)

// unique constraint codes per backend
const (
	mysqlDuplicateEntry  = 1062
	pgUniqueViolation    = "23505"
	sqliteConstraintUniq = 2067 // SQLITE_CONSTRAINT_UNIQUE
	sqliteConstraintPKey = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
)

// IsUniqueViolation reports whether err was raised by a unique or primary key constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqliteConstraintUniq || code == sqliteConstraintPKey ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}
