package driver

import (
	"database/sql"

	// sqlite driver, registers as "sqlite"
	_ "modernc.org/sqlite"
)

var sqliteDialect = &sqlDialect{
	name:      "sqlite",
	rewrite:   sqliteAdapter,
	txOptions: sqliteTxOptionAdapter,
}

// NewSQLiteConn Returns a sqlite handle, dsn is a file path or ":memory:"
//
// the pool is pinned to a single connection, sqlite serializes writers anyway
// and every connection to ":memory:" would otherwise see its own database
func NewSQLiteConn(dsn string, cfg *DBConfig) (ITransactionalDB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, err
	}
	return &SQLWrapper{conn, sqliteDialect}, nil
}

// sqlite transactions are serializable, the driver rejects explicit isolation levels
func sqliteTxOptionAdapter(opts *TxOptions) *sql.TxOptions {
	return nil
}

func sqliteAdapter(query string) string {
	query = DollarPlaceholderPattern.ReplaceAllString(query, "?")
	query = SpacePattern.ReplaceAllString(query, " ")
	return query
}
