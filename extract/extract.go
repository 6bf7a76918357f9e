// Package extract drives table exports from an opened container: it lists
// tables, exports one table or all of them, and tallies the outcomes.
//
// Per-table failures are reported and recorded in an Outcome; they never
// stop a batch. Only catalog failures are returned as errors.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	db "github.com/KazanKK/tablextract/database"
)

// Outcome is the result of exporting one table.
type Outcome struct {
	Table string
	Path  string
	Rows  int
	Err   error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Summary holds the outcomes of a batch in enumeration order.
type Summary struct {
	Outcomes []Outcome
}

func (s Summary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

func (s Summary) Failed() int { return len(s.Outcomes) - s.Succeeded() }

// Exporter writes tables of Container as CSV files into OutputDir.
// Progress and failure messages go to Out.
type Exporter struct {
	Container db.Container
	OutputDir string
	Verbose   bool
	CSV       db.CSVOptions
	Out       io.Writer
}

// ListTables returns the container's table names in catalog order.
func ListTables(ctx context.Context, c db.Container) ([]string, error) {
	names, err := c.TableNames(ctx)
	if err != nil {
		if !errors.Is(err, db.ErrCatalog) {
			err = errors.Mark(err, db.ErrCatalog)
		}
		return nil, errors.Wrapf(err, "listing tables of %s", c.Path())
	}
	return names, nil
}

// FindTable returns the first name in names equal to want ignoring case.
func FindTable(names []string, want string) (string, bool) {
	for _, name := range names {
		if strings.EqualFold(name, want) {
			return name, true
		}
	}
	return "", false
}

// ExportTable writes table to <OutputDir>/<table>.csv. Failures are printed
// and returned in the Outcome, never as a panic or error.
func (e *Exporter) ExportTable(ctx context.Context, table string) Outcome {
	path, err := csvPath(e.OutputDir, table)
	out := Outcome{Table: table, Path: path}

	rows := 0
	if err == nil {
		rows, err = db.WriteCSV(ctx, e.Container, table, path, e.CSV)
	}
	if err != nil {
		out.Err = errors.Wrapf(err, "exporting table %s", table)
		fmt.Fprintf(e.Out, "Failed to export %q to csv.\n", table)
		if e.Verbose {
			fmt.Fprintf(e.Out, "%+v\n", out.Err)
		}
		slog.Debug("table export failed", "table", table, "error", err)
		return out
	}

	out.Rows = rows
	fmt.Fprintf(e.Out, "%s exported to %q.\n", table, path)
	slog.Debug("table exported", "table", table, "rows", rows, "path", path)
	return out
}

// csvPath places a table's file directly inside dir. Names that would
// resolve elsewhere are rejected.
func csvPath(dir, table string) (string, error) {
	if table == "" || table == "." || table == ".." || strings.ContainsAny(table, `/\`) || strings.ContainsRune(table, 0) {
		return "", errors.Newf("table name %q cannot be used as a file name", table)
	}
	return filepath.Join(dir, table+".csv"), nil
}

// ExportAll exports every table in catalog order. The returned error is
// non-nil only when the catalog itself could not be read.
func (e *Exporter) ExportAll(ctx context.Context) (Summary, error) {
	names, err := ListTables(ctx, e.Container)
	if err != nil {
		fmt.Fprintln(e.Out, "Error during writing ALL TABLES to CSV")
		if e.Verbose {
			fmt.Fprintf(e.Out, "%+v\n", err)
		}
		return Summary{}, err
	}

	summary := Summary{Outcomes: make([]Outcome, 0, len(names))}
	for _, name := range names {
		summary.Outcomes = append(summary.Outcomes, e.ExportTable(ctx, name))
	}
	slog.Debug("batch finished", "tables", len(names), "failed", summary.Failed())
	return summary, nil
}
