package db

import "context"

// Container is an opened, read-only desktop database file. A Container belongs
// to a single invocation and must be closed by whoever opened it.
type Container interface {
	// Path is the file the container was opened from.
	Path() string

	// Format names the reader backing the container ("sqlite", "dbf").
	Format() string

	// TableNames returns the user tables in catalog order.
	TableNames(ctx context.Context) ([]string, error)

	// Columns returns the ordered column list of a table.
	Columns(ctx context.Context, table string) ([]Column, error)

	// Rows streams every record of a table. Values are passed in column
	// order; the slice is reused between calls.
	Rows(ctx context.Context, table string, fn func(values []any) error) error

	Close() error
}
