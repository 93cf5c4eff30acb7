package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cleaner"
)

// Table collects rows and renders them aligned with bold uppercase
// headers on top.
type Table struct {
	out     io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a new table writing to stdout.
func NewTable(header []string) *Table {
	return NewTableWriter(os.Stdout, header)
}

// NewTableWriter creates a new table that writes to a specific writer.
func NewTableWriter(w io.Writer, header []string) *Table {
	return &Table{
		out:     w,
		headers: header,
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

// Render writes the header and all collected rows.
func (t *Table) Render() {
	tw := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)

	if len(t.headers) > 0 {
		headerRow := make([]string, len(t.headers))
		for i, h := range t.headers {
			headerRow[i] = Bold(strings.ToUpper(h))
		}
		fmt.Fprintln(tw, strings.Join(headerRow, "\t"))
	}
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// PrintCatalog prints a catalog as a numbered listing, 1-based as the
// selection input expects.
func PrintCatalog(cat *cleaner.Catalog) {
	if cat.Empty() {
		MutedMsg("Nothing to remove")
		return
	}

	table := NewTable([]string{"#", "Item", "Size", "Tags"})
	for i, item := range cat.Items {
		tags := ""
		if len(item.Tags) > 0 {
			tags = ItemTag.Sprint(strings.Join(item.Tags, ","))
		}

		table.AddRow([]string{
			ItemIndex.Sprintf("%d", i+1),
			ItemLabel.Sprint(item.Label),
			ItemSize.Sprint(cleaner.FormatBytes(item.Size)),
			tags,
		})
	}
	table.Render()

	Println("")
	InfoMsg("%d item(s), %s total", cat.Len(), cleaner.FormatBytes(cat.TotalSize()))
}

// PrintBatchResult prints the per-batch summary line.
func PrintBatchResult(res cleaner.BatchResult) {
	if res.Failed == 0 {
		SuccessMsg("Removed %d/%d item(s), reclaimed %s",
			res.Succeeded, res.Attempted, cleaner.FormatBytes(res.BytesReclaimed))
		return
	}

	WarningMsg("Removed %d/%d item(s), %d failed, reclaimed %s",
		res.Succeeded, res.Attempted, res.Failed, cleaner.FormatBytes(res.BytesReclaimed))
	for _, outcome := range res.Outcomes {
		if !outcome.Success() {
			ErrorMsg("  %s: %v", outcome.ID, outcome.Err)
		}
	}
}

// PrintRejected reports the invalid selection tokens.
func PrintRejected(rejected []string) {
	if len(rejected) == 0 {
		return
	}
	WarningMsg("Ignored invalid selection token(s): %s", strings.Join(rejected, ", "))
}
