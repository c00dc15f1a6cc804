package gtable

import (
	"fmt"
	"io"
	"strings"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func writeMarkdown(w io.Writer, b *Built) error {
	header := escapeMarkdownRow(b.Labels)
	numCols := len(header)
	rows := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = escapeMarkdownRow(row)
	}

	if b.Title != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", b.Title); err != nil {
			return err
		}
	}

	// Calculate column widths (minimum 3 for alignment markers).
	widths := computeWidths(numCols, header, rows)
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}
	aligns := extendAligns(b.Aligns, numCols)

	if err := writeMarkdownRow(w, header, widths, aligns); err != nil {
		return err
	}

	sep := make([]string, numCols)
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}

	for _, note := range b.Notes {
		if _, err := fmt.Fprintf(w, "\n%s\n", note); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownRow(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = markdownEscaper.Replace(c)
	}
	return out
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}
