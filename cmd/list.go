package cmd

import (
	"context"
	"fmt"

	db "github.com/KazanKK/tablextract/database"
	"github.com/KazanKK/tablextract/extract"
)

func (r *runner) listTables(ctx context.Context, c db.Container) error {
	names, err := extract.ListTables(ctx, c)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(r.opts.Stdout, name)
	}
	return nil
}
