package db

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCatalog marks failures reading a container's table catalog.
	ErrCatalog = errors.New("reading table catalog")

	// ErrTableNotFound is returned when a requested table is not in the catalog.
	ErrTableNotFound = errors.New("table not found")

	// ErrMissingFlag is returned when a mode needs a value that was not supplied.
	ErrMissingFlag = errors.New("required flag not supplied")
)

// InvalidPathError reports that a container path does not name a regular file.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	if e.Path == "" {
		return "Invalid Database file supplied: no path given"
	}
	return fmt.Sprintf("Invalid Database file supplied: %q", e.Path)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }

// UnreadableContainerError reports that a file exists but no reader could
// open it as a database.
type UnreadableContainerError struct {
	Path string
	Err  error
}

func (e *UnreadableContainerError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to read database %q", e.Path)
	}
	return fmt.Sprintf("unable to read database %q: %v", e.Path, e.Err)
}

func (e *UnreadableContainerError) Unwrap() error { return e.Err }
