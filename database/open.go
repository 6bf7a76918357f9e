package db

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

var sqliteHeader = []byte("SQLite format 3\x00")

// Open validates path and opens it with the reader matching its format.
// It fails with *InvalidPathError when path is not an existing regular file
// and with *UnreadableContainerError when no reader can open it.
func Open(ctx context.Context, path string) (Container, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &InvalidPathError{Path: path}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &InvalidPathError{Path: path, Err: errors.WithStack(err)}
	}
	if !info.Mode().IsRegular() {
		return nil, &InvalidPathError{Path: path, Err: errors.Newf("%s is not a regular file", path)}
	}

	var c Container
	switch {
	case strings.EqualFold(filepath.Ext(path), ".dbf"):
		c, err = openDBF(path)
	default:
		var ok bool
		ok, err = hasSQLiteHeader(path)
		if err != nil {
			break
		}
		if !ok {
			err = errors.Newf("unsupported database format (supported: %s)", strings.Join(SupportedFormats(), ", "))
			break
		}
		c, err = openSQLite(ctx, path)
	}
	if err != nil {
		return nil, &UnreadableContainerError{Path: path, Err: err}
	}
	return c, nil
}

// SupportedFormats lists the container formats Open understands.
func SupportedFormats() []string {
	return []string{"sqlite", "dbf"}
}

func hasSQLiteHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrap(err, "opening database file")
	}
	defer f.Close()

	buf := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, errors.Wrap(err, "reading file header")
	}
	return bytes.Equal(buf, sqliteHeader), nil
}
