package db

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"
)

type SQLiteContainer struct {
	DB   *sql.DB
	path string
}

func (s *SQLiteContainer) log(msg string, args ...any) {
	slog.Debug(msg, append([]any{"backend", "sqlite", "path", s.path}, args...)...)
}

func openSQLite(ctx context.Context, path string) (*SQLiteContainer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolving database path")
	}
	dsn := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}).String()

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	conn.SetMaxOpenConns(1)

	s := &SQLiteContainer{DB: conn, path: path}
	// sql.Open is lazy; touch the catalog so a damaged file fails here.
	var n int
	if err := conn.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "reading sqlite catalog")
	}
	s.log("opened database", "objects", n)
	return s, nil
}

func (s *SQLiteContainer) Path() string   { return s.path }
func (s *SQLiteContainer) Format() string { return "sqlite" }

func (s *SQLiteContainer) TableNames(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("no database connection")
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
		ORDER BY rowid
	`)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "querying tables"), ErrCatalog)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "scanning table name"), ErrCatalog)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "iterating tables"), ErrCatalog)
	}
	s.log("enumerated tables", "count", len(tables))
	return tables, nil
}

func (s *SQLiteContainer) Columns(ctx context.Context, table string) ([]Column, error) {
	// table_xinfo lists generated columns, which SELECT * returns. Hidden
	// columns of virtual tables (hidden = 1) are not part of SELECT *.
	rows, err := s.DB.QueryContext(ctx, `SELECT name, type FROM pragma_table_xinfo(?) WHERE hidden != 1 ORDER BY cid`, table)
	if err != nil {
		return nil, errors.Wrapf(err, "querying columns of %s", table)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, errors.Wrapf(err, "scanning column of %s", table)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating columns of %s", table)
	}
	if len(cols) == 0 {
		return nil, errors.Wrapf(ErrTableNotFound, "%s", table)
	}
	return cols, nil
}

func (s *SQLiteContainer) Rows(ctx context.Context, table string, fn func(values []any) error) error {
	rows, err := s.DB.QueryContext(ctx, "SELECT * FROM "+quoteIdentifier(table))
	if err != nil {
		return errors.Wrapf(err, "querying rows of %s", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return errors.Wrapf(err, "reading result columns of %s", table)
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return errors.Wrapf(err, "scanning row of %s", table)
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Wrapf(err, "iterating rows of %s", table)
	}
	return nil
}

func (s *SQLiteContainer) Close() error {
	if s.DB == nil {
		return nil
	}
	err := s.DB.Close()
	s.DB = nil
	return err
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
