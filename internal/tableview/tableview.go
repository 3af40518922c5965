// Package tableview renders store tables as aligned text columns for
// the db view subcommand.
package tableview

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/unqdlphn/web-app-starter/internal/store"
)

// Render writes the table as aligned columns with a header rule and a
// row count footer.
func Render(w io.Writer, t *store.Table) error {
	if len(t.Columns) == 0 {
		return writeFooter(w, 0)
	}

	widths := lo.Map(t.Columns, func(col string, i int) int {
		width := len(col)
		for _, row := range t.Rows {
			if i < len(row) && len(row[i]) > width {
				width = len(row[i])
			}
		}
		return width
	})

	if err := writeRow(w, t.Columns, widths); err != nil {
		return err
	}

	rule := lo.Map(widths, func(width int, _ int) string {
		return strings.Repeat("-", width)
	})
	if err := writeRow(w, rule, widths); err != nil {
		return err
	}

	for _, row := range t.Rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}

	return writeFooter(w, len(t.Rows))
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}

func writeFooter(w io.Writer, rows int) error {
	word := "rows"
	if rows == 1 {
		word = "row"
	}
	_, err := fmt.Fprintf(w, "\n%s %s\n", humanize.Comma(int64(rows)), word)
	return err
}
