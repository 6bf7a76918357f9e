package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, stmts ...string) Container {
	t.Helper()
	c, err := Open(context.Background(), newTestDB(t, stmts...))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteTableNamesCatalogOrder(t *testing.T) {
	c := openTestDB(t,
		`CREATE TABLE Zebra (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE Customers (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE INDEX idx_customers_name ON Customers (name)`,
		`CREATE VIEW customer_names AS SELECT name FROM Customers`,
		`CREATE TABLE Orders (id INTEGER PRIMARY KEY AUTOINCREMENT, customer_id INTEGER)`,
	)

	names, err := c.TableNames(context.Background())
	require.NoError(t, err)
	// sqlite_sequence is created by AUTOINCREMENT and must not be listed.
	assert.Equal(t, []string{"Zebra", "Customers", "Orders"}, names)
}

func TestSQLiteTableNamesEmpty(t *testing.T) {
	c := openTestDB(t, `CREATE TABLE tmp (id INTEGER)`, `DROP TABLE tmp`)

	names, err := c.TableNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSQLiteColumns(t *testing.T) {
	c := openTestDB(t, `CREATE TABLE People (id INTEGER PRIMARY KEY, name TEXT NOT NULL, score REAL, notes)`)

	cols, err := c.Columns(context.Background(), "People")
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Name: "id", Type: "INTEGER"},
		{Name: "name", Type: "TEXT"},
		{Name: "score", Type: "REAL"},
		{Name: "notes", Type: ""},
	}, cols)

	_, err = c.Columns(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestSQLiteColumnsIncludeGenerated(t *testing.T) {
	c := openTestDB(t, `CREATE TABLE Items (a INTEGER, b INTEGER, total INTEGER GENERATED ALWAYS AS (a + b) VIRTUAL)`)

	cols, err := c.Columns(context.Background(), "Items")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "total"}, ColumnNames(cols))
}

func TestSQLiteRows(t *testing.T) {
	c := openTestDB(t,
		`CREATE TABLE "Odd ""Name""" (id INTEGER, label TEXT)`,
		`INSERT INTO "Odd ""Name""" VALUES (1, 'one'), (2, NULL)`,
	)

	var got [][]any
	err := c.Rows(context.Background(), `Odd "Name"`, func(values []any) error {
		row := make([]any, len(values))
		copy(row, values)
		got = append(got, row)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][]any{{int64(1), "one"}, {int64(2), nil}}, got)
}

func TestSQLiteClose(t *testing.T) {
	c, err := Open(context.Background(), newTestDB(t, `CREATE TABLE t (id INTEGER)`))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.TableNames(context.Background())
	assert.Error(t, err)
}
