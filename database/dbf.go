package db

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tadvi/dbf"
)

// DBFContainer exposes a dBase file as a container with a single table
// named after the file.
type DBFContainer struct {
	path    string
	name    string
	fields  []string
	iterate func(fn func(row []string) error) error
}

func openDBF(path string) (c *DBFContainer, err error) {
	// The dbf reader indexes into the header without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = errors.Newf("malformed dbf file: %v", r)
		}
	}()

	t, err := dbf.LoadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading dbf file")
	}

	var fields []string
	for _, field := range t.Fields() {
		fields = append(fields, strings.Trim(field.Name, " \x00"))
	}

	c = &DBFContainer{
		path:   path,
		name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		fields: fields,
		iterate: func(fn func(row []string) error) error {
			iter := t.NewIterator()
			for iter.Next() {
				if err := fn(iter.Row()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	slog.Debug("opened database", "backend", "dbf", "path", path, "fields", len(fields))
	return c, nil
}

func (d *DBFContainer) Path() string   { return d.path }
func (d *DBFContainer) Format() string { return "dbf" }

func (d *DBFContainer) TableNames(ctx context.Context) ([]string, error) {
	if d.iterate == nil {
		return nil, errors.Mark(errors.New("database is closed"), ErrCatalog)
	}
	return []string{d.name}, nil
}

func (d *DBFContainer) Columns(ctx context.Context, table string) ([]Column, error) {
	if table != d.name {
		return nil, errors.Wrapf(ErrTableNotFound, "%s", table)
	}
	cols := make([]Column, len(d.fields))
	for i, name := range d.fields {
		cols[i] = Column{Name: name}
	}
	return cols, nil
}

func (d *DBFContainer) Rows(ctx context.Context, table string, fn func(values []any) error) error {
	if table != d.name {
		return errors.Wrapf(ErrTableNotFound, "%s", table)
	}
	if d.iterate == nil {
		return errors.New("database is closed")
	}

	values := make([]any, len(d.fields))
	return d.iterate(func(row []string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(row) != len(values) {
			return errors.Newf("record has %d fields, header declares %d", len(row), len(values))
		}
		for i, v := range row {
			values[i] = strings.TrimRight(v, " ")
		}
		return fn(values)
	})
}

func (d *DBFContainer) Close() error {
	d.iterate = nil
	return nil
}
