package extract

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// RenderSummary prints the batch outcomes as a table followed by a tally line.
func RenderSummary(w io.Writer, s Summary) {
	if len(s.Outcomes) == 0 {
		fmt.Fprintln(w, "No tables found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Table", "Status", "Rows", "File"})
	table.SetBorder(false)
	table.SetColumnSeparator(" ")
	table.SetAutoWrapText(false)

	for _, o := range s.Outcomes {
		if o.OK() {
			table.Append([]string{o.Table, "ok", strconv.Itoa(o.Rows), o.Path})
		} else {
			table.Append([]string{o.Table, "failed", "-", "-"})
		}
	}
	table.Render()

	fmt.Fprintf(w, "\n%d exported, %d failed\n", s.Succeeded(), s.Failed())
}
