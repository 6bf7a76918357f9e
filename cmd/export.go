package cmd

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	db "github.com/KazanKK/tablextract/database"
	"github.com/KazanKK/tablextract/extract"
)

// exportTable exports the table matching name ignoring case. A matched table
// whose export fails is reported by the exporter and does not fail the run.
func (r *runner) exportTable(ctx context.Context, e *extract.Exporter, name string) error {
	names, err := extract.ListTables(ctx, e.Container)
	if err != nil {
		return err
	}

	table, ok := extract.FindTable(names, name)
	if !ok {
		return errors.Mark(errors.Newf("Provided table name {%s} was not found.", name), db.ErrTableNotFound)
	}
	if table != name {
		slog.Debug("matched table ignoring case", "requested", name, "table", table)
	}

	e.ExportTable(ctx, table)
	return nil
}

// exportAll runs the batch. Per-table failures are part of the summary;
// only a catalog failure fails the run.
func (r *runner) exportAll(ctx context.Context, e *extract.Exporter, summary bool) error {
	s, err := e.ExportAll(ctx)
	if err != nil {
		return err
	}
	if summary || r.opts.Interactive {
		extract.RenderSummary(r.opts.Stdout, s)
	}
	return nil
}
