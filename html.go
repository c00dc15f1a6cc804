package gtable

import (
	"fmt"
	"html"
	"io"
)

func writeHTML(w io.Writer, b *Built) error {
	// Cells built for HTML are already escaped markup.
	cell := html.EscapeString
	if b.Context == ContextHTML {
		cell = func(s string) string { return s }
	}

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}

	if b.Title != "" {
		caption := html.EscapeString(b.Title)
		if b.Subtitle != "" {
			caption += "<br>" + html.EscapeString(b.Subtitle)
		}
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", caption); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
		return err
	}
	for i, label := range b.Labels {
		style := alignStyle(b.Aligns, i)
		if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", style, html.EscapeString(label)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for _, row := range b.Rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for i, c := range row {
			style := alignStyle(b.Aligns, i)
			if _, err := fmt.Fprintf(w, "      <td%s>%s</td>\n", style, cell(c)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	if len(b.Notes) > 0 {
		if _, err := fmt.Fprintln(w, "  <tfoot>"); err != nil {
			return err
		}
		for _, note := range b.Notes {
			if _, err := fmt.Fprintf(w, "    <tr><td colspan=\"%d\">%s</td></tr>\n", max(1, len(b.Columns)), html.EscapeString(note)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "  </tfoot>"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

func alignStyle(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	switch aligns[col] {
	case AlignRight:
		return ` style="text-align: right"`
	case AlignCenter:
		return ` style="text-align: center"`
	default:
		return ""
	}
}
