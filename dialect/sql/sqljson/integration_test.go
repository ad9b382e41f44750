package sqljson_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/cy-suite/quill/dialect"
	"github.com/cy-suite/quill/dialect/sql"
	"github.com/cy-suite/quill/dialect/sql/sqljson"
)

// queryJSON runs "SELECT <expr>" on the driver and decodes the single
// JSON result column.
func queryJSON(t *testing.T, drv *sql.Driver, query string, args []any) any {
	t.Helper()
	rows := &sql.Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT "+query, args, rows))
	defer rows.Close()
	require.True(t, rows.Next())
	var raw string
	require.NoError(t, rows.Scan(&raw))
	var out any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestSQLiteExecution(t *testing.T) {
	drv, err := sql.Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	defer drv.Close()

	t.Run("set", func(t *testing.T) {
		expr, err := sqljson.Set(sql.Value(`{"a":{"b":1}}`),
			sqljson.Assignment{Path: "a__b", Value: 5},
		)
		require.NoError(t, err)
		query, args, err := sql.Build(dialect.SQLite, expr)
		require.NoError(t, err)
		got := queryJSON(t, drv, query, args)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": float64(5)}}, got)
	})

	t.Run("set_literal_kinds", func(t *testing.T) {
		// Every literal kind must survive the round trip through the
		// database: strings, booleans and nulls in particular, which
		// an affinity cast would flatten to 0.
		expr, err := sqljson.Set(sql.Value(`{}`),
			sqljson.Assignment{Path: "theme", Value: "dark"},
			sqljson.Assignment{Path: "flag", Value: true},
			sqljson.Assignment{Path: "none", Value: nil},
			sqljson.Assignment{Path: "obj", Value: map[string]any{"k": "v"}},
		)
		require.NoError(t, err)
		query, args, err := sql.Build(dialect.SQLite, expr)
		require.NoError(t, err)
		got := queryJSON(t, drv, query, args)
		assert.Equal(t, map[string]any{
			"theme": "dark",
			"flag":  true,
			"none":  nil,
			"obj":   map[string]any{"k": "v"},
		}, got)
	})

	t.Run("remove", func(t *testing.T) {
		expr, err := sqljson.Remove(sql.Value(`{"a":{"b":1},"c":2}`), "a__b", "c")
		require.NoError(t, err)
		query, args, err := sql.Build(dialect.SQLite, expr)
		require.NoError(t, err)
		got := queryJSON(t, drv, query, args)
		assert.Equal(t, map[string]any{"a": map[string]any{}}, got)
	})
}

func TestUpdateStatement(t *testing.T) {
	// Compile an expression into an UPDATE statement and run it
	// through the driver.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sql.OpenDB(dialect.MySQL, db)

	expr, err := sqljson.Set(sql.Ident("data"),
		sqljson.Assignment{Path: "user__name", Value: "John"},
	)
	require.NoError(t, err)
	query, args, err := sql.BuildFeatures(drv.Dialect(), drv.Features(), expr)
	require.NoError(t, err)

	stmt := fmt.Sprintf("UPDATE `users` SET `data` = %s WHERE `id` = ?", query)
	mock.ExpectExec(regexp.QuoteMeta(stmt)).
		WithArgs(`$."user"."name"`, `"John"`, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = drv.Exec(context.Background(), stmt, append(args, 1), nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLExecution(t *testing.T) {
	dsn := os.Getenv("QUILL_MYSQL_DSN")
	if dsn == "" {
		t.Skip("QUILL_MYSQL_DSN not set")
	}
	drv, err := sql.Open(dialect.MySQL, dsn)
	require.NoError(t, err)
	defer drv.Close()

	expr, err := sqljson.Set(sql.Value(`{"a":{"b":1}}`),
		sqljson.Assignment{Path: "a__b", Value: 5},
		sqljson.Assignment{Path: "c", Value: "x"},
	)
	require.NoError(t, err)
	query, args, err := sql.Build(dialect.MySQL, expr)
	require.NoError(t, err)
	got := queryJSON(t, drv, query, args)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"b": float64(5)},
		"c": "x",
	}, got)
}

func TestPostgresExecution(t *testing.T) {
	dsn := os.Getenv("QUILL_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("QUILL_POSTGRES_DSN not set")
	}
	drv, err := sql.Open(dialect.Postgres, dsn)
	require.NoError(t, err)
	defer drv.Close()

	t.Run("set", func(t *testing.T) {
		expr, err := sqljson.Set(sql.Value(`{"a":{"b":1}}`),
			sqljson.Assignment{Path: "a__b", Value: 5},
			sqljson.Assignment{Path: "c", Value: nil},
		)
		require.NoError(t, err)
		query, args, err := sql.Build(dialect.Postgres, expr)
		require.NoError(t, err)
		got := queryJSON(t, drv, query, args)
		assert.Equal(t, map[string]any{
			"a": map[string]any{"b": float64(5)},
			"c": nil,
		}, got)
	})

	t.Run("remove", func(t *testing.T) {
		expr, err := sqljson.Remove(sql.Value(`{"a":{"b":1},"c":2}`), "a__b")
		require.NoError(t, err)
		query, args, err := sql.Build(dialect.Postgres, expr)
		require.NoError(t, err)
		got := queryJSON(t, drv, query, args)
		assert.Equal(t, map[string]any{
			"a": map[string]any{},
			"c": float64(2),
		}, got)
	})
}
