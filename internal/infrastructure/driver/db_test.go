package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) ITransactionalDB {
	t.Helper()
	conn, err := GetDBConnection(&DBConfig{Driver: "sqlite", Schema: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(context.Background()) })

	_, err = conn.ExecContext(context.Background(), `CREATE TABLE item (id VARCHAR(64) PRIMARY KEY, n INTEGER NOT NULL)`)
	require.NoError(t, err)
	return conn
}

func countItems(t *testing.T, conn ITransactionalDB) int {
	t.Helper()
	rows, err := conn.QueryContext(context.Background(), `SELECT COUNT(*) FROM item`)
	require.NoError(t, err)
	defer rows.Close()
	var n int
	require.True(t, rows.Next())
	require.NoError(t, rows.Scan(&n))
	return n
}

func Test_getDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  *DBConfig
		want string
	}{
		{
			name: "mysql with protocol",
			cfg:  &DBConfig{Driver: "mysql", User: "u", Password: "p", Protocol: "tcp", Host: "db", Port: 3306, Schema: "course", Query: "parseTime=true"},
			want: "u:p@tcp(db:3306)/course?parseTime=true",
		},
		{
			name: "postgres",
			cfg:  &DBConfig{Driver: "postgres", User: "u", Password: "p", Host: "db", Port: 5432, Schema: "course"},
			want: "u:p@db:5432/course",
		},
		{
			name: "sqlite file",
			cfg:  &DBConfig{Driver: "sqlite", Schema: "course.db", Host: "ignored"},
			want: "course.db",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getDSN(tt.cfg))
		})
	}
}

func TestGetDBConnection_unsupported(t *testing.T) {
	_, err := GetDBConnection(&DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func Test_dialectAdapters(t *testing.T) {
	query := `SELECT "id"
	FROM item WHERE n = $1 AND id = $2`
	assert.Equal(t, "SELECT `id` FROM item WHERE n = ? AND id = ?", mysqlAdapter(query))
	assert.Equal(t, `SELECT "id" FROM item WHERE n = ? AND id = ?`, sqliteAdapter(query))
	assert.Equal(t, `SELECT "id" FROM item WHERE n = $1 AND id = $2`, pgsqlAdapter(query))
}

func TestSQLWrapper_transaction(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()

	tx, err := conn.BeginTx(ctx, &TxOptions{})
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO item(id, n) VALUES($1, $2)`, "a", 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, countItems(t, conn))

	tx, err = conn.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO item(id, n) VALUES($1, $2)`, "b", 2)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, 1, countItems(t, conn))

	assert.Panics(t, func() { tx.BeginTx(ctx, nil) })
	assert.NoError(t, conn.Ping())
}

func TestIsUniqueViolation(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `INSERT INTO item(id, n) VALUES($1, $2)`, "a", 1)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO item(id, n) VALUES($1, $2)`, "a", 2)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
