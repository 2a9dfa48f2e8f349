package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// DefaultPreviewRows is how many rows of each table the preview prints.
const DefaultPreviewRows = 50

// PrintPreview writes a plain-text overview of rep: run facts, then the
// first limit rows of each output table.
func PrintPreview(w io.Writer, rep *Report, limit int) error {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}
	res := rep.Result

	fmt.Fprintln(w, "=== bolspread plan ===")
	fmt.Fprintf(w, "File:           %s\n", rep.Meta.FilePath)
	fmt.Fprintf(w, "SHA-256:        %s\n", rep.Meta.FileSHA256)
	fmt.Fprintf(w, "Rows read:      %d\n", rep.Summary.RowsRead)
	fmt.Fprintf(w, "Container rows: %d\n", len(res.Containers))
	fmt.Fprintf(w, "BOLs:           %d\n", len(res.BOLs))
	fmt.Fprintf(w, "Mixed ATA BOLs: %d\n", res.MixedCount())
	fmt.Fprintf(w, "Outcome:        %s\n", res.Outcome)

	for _, t := range BuildTables(res) {
		fmt.Fprintln(w)
		if err := printTable(w, t, limit); err != nil {
			return err
		}
	}
	return nil
}

func printTable(w io.Writer, t Table, limit int) error {
	fmt.Fprintf(w, "--- %s (%d rows) ---\n", t.Name, len(t.Rows))
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	n := min(limit, len(t.Rows))
	for _, rec := range t.Records()[:n+1] {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n < len(t.Rows) {
		fmt.Fprintf(w, "... %d more\n", len(t.Rows)-n)
	}
	return nil
}
