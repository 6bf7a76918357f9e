package db

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// RowFilter may rewrite a row before it is written, or drop it by
// returning false.
type RowFilter func(row []string) ([]string, bool)

// PassThrough keeps every row unchanged.
func PassThrough(row []string) ([]string, bool) { return row, true }

type CSVOptions struct {
	Header    bool
	Quote     rune
	Delimiter rune
	UseCRLF   bool
	Filter    RowFilter
}

// DefaultCSVOptions writes a header row, quotes with '"' and keeps every row.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Header:    true,
		Quote:     '"',
		Delimiter: ',',
		Filter:    PassThrough,
	}
}

// WriteCSV writes every row of table to path and returns the number of rows
// written. The file is written next to path and renamed into place, so a
// failed export never leaves a partial file behind.
func WriteCSV(ctx context.Context, c Container, table, path string, opts CSVOptions) (n int, err error) {
	if opts.Quote != 0 && opts.Quote != '"' {
		return 0, errors.Newf("unsupported quote character %q", opts.Quote)
	}
	filter := opts.Filter
	if filter == nil {
		filter = PassThrough
	}

	t, err := DescribeTable(ctx, c, table)
	if err != nil {
		return 0, errors.Wrap(err, "reading table schema")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, errors.Wrap(err, "creating CSV file")
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	writer := csv.NewWriter(tmp)
	if opts.Delimiter != 0 {
		writer.Comma = opts.Delimiter
	}
	writer.UseCRLF = opts.UseCRLF

	if opts.Header {
		if err := writer.Write(ColumnNames(t.Columns)); err != nil {
			return 0, errors.Wrap(err, "writing CSV header")
		}
	}

	record := make([]string, len(t.Columns))
	err = c.Rows(ctx, table, func(values []any) error {
		if len(values) != len(record) {
			return errors.Newf("row has %d values, table declares %d columns", len(values), len(record))
		}
		for i, v := range values {
			record[i] = FormatValue(v)
		}
		out, keep := filter(record)
		if !keep {
			return nil
		}
		if err := writer.Write(out); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, errors.Wrap(err, "flushing CSV")
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrap(err, "closing CSV file")
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return 0, errors.Wrap(err, "setting CSV file mode")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, errors.Wrap(err, "moving CSV file into place")
	}
	return n, nil
}

// FormatValue renders a single database value as CSV text. NULL becomes an
// empty field.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
