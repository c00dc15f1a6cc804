package gtable

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

func writeTable(w io.Writer, b *Built, cfg renderConfig) error {
	header := slices.Clone(b.Labels)
	rows := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		rows[i] = slices.Clone(row)
	}
	aligns := slices.Clone(b.Aligns)
	wrapWidths := slices.Clone(cfg.wrapWidths)

	// Apply row numbering by prepending a column.
	if cfg.numbered {
		header = append([]string{cfg.numberHeader}, header...)
		for i, row := range rows {
			rows[i] = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		aligns = append([]Alignment{AlignRight}, aligns...)
		if len(wrapWidths) > 0 {
			wrapWidths = append([]int{0}, wrapWidths...)
		}
	}

	numCols := colCount(header, rows)
	widths := computeWidths(numCols, header, rows)

	// Apply max column widths for truncation.
	maxWidths := cfg.maxWidths
	if cfg.numbered && len(maxWidths) > 0 {
		maxWidths = append([]int{0}, maxWidths...)
	}
	for i, limit := range maxWidths {
		if i < numCols && limit > 0 && widths[i] > limit {
			widths[i] = limit
		}
	}

	aligns = extendAligns(aligns, numCols)

	var titles []string
	if b.Title != "" {
		titles = append(titles, b.Title)
		if b.Subtitle != "" {
			titles = append(titles, b.Subtitle)
		}
	}

	var err error
	if cfg.border == BorderNone {
		err = renderPlainTable(w, titles, header, rows, widths, aligns, wrapWidths, cfg.pageSize)
	} else {
		err = renderBorderedTable(w, titles, header, rows, widths, aligns, cfg.border, wrapWidths, cfg.pageSize)
	}
	if err != nil {
		return err
	}

	for _, note := range b.Notes {
		if _, err := fmt.Fprintln(w, note); err != nil {
			return err
		}
	}
	return nil
}

func colCount(header []string, rows [][]string) int {
	n := len(header)
	for _, row := range rows {
		n = max(n, len(row))
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// --- Cell wrapping ---

func wrapCell(s string, width int) []string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > 0 {
		line := runewidth.Truncate(s, width, "")
		if line == "" {
			// A rune wider than the column still has to advance.
			line = string([]rune(s)[0])
		}
		lines = append(lines, line)
		s = s[len(line):]
	}
	return lines
}

// wrapRow splits each cell into the visual lines of one table row.
func wrapRow(cells []string, widths []int, wrapWidths []int) [][]string {
	wrapped := make([][]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		ww := 0
		if i < len(wrapWidths) {
			ww = wrapWidths[i]
		}
		if ww > 0 && ww < width {
			// Use wrap width for wrapping but column width for formatting.
			wrapped[i] = wrapCell(cell, ww)
		} else {
			wrapped[i] = []string{cell}
		}
	}
	return wrapped
}

func maxLines(wrapped [][]string) int {
	n := 1
	for _, lines := range wrapped {
		n = max(n, len(lines))
	}
	return n
}

// rowLines renders the padded cells of every visual line of a row.
func rowLines(cells []string, widths []int, aligns []Alignment, wrapWidths []int) [][]string {
	wrapped := wrapRow(cells, widths, wrapWidths)
	lines := make([][]string, maxLines(wrapped))
	for line := range lines {
		parts := make([]string, len(widths))
		for i, width := range widths {
			cell := ""
			if line < len(wrapped[i]) {
				cell = wrapped[i][line]
			}
			parts[i] = formatTableCell(cell, width, aligns[i])
		}
		lines[line] = parts
	}
	return lines
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, titles []string, header []string, rows [][]string, widths []int, aligns []Alignment, wrapWidths []int, pageSize int) error {
	for _, title := range titles {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if err := writePlainRow(w, header, widths, aligns, wrapWidths); err != nil {
		return err
	}
	if err := writePlainSep(w, widths); err != nil {
		return err
	}
	for i, row := range rows {
		if pageSize > 0 && i > 0 && i%pageSize == 0 {
			if err := writePlainSep(w, widths); err != nil {
				return err
			}
			if err := writePlainRow(w, header, widths, aligns, wrapWidths); err != nil {
				return err
			}
			if err := writePlainSep(w, widths); err != nil {
				return err
			}
		}
		if err := writePlainRow(w, row, widths, aligns, wrapWidths); err != nil {
			return err
		}
	}
	return nil
}

func writePlainSep(w io.Writer, widths []int) error {
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(sep, "  "))
	return err
}

func writePlainRow(w io.Writer, cells []string, widths []int, aligns []Alignment, wrapWidths []int) error {
	for _, parts := range rowLines(cells, widths, aligns, wrapWidths) {
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, titles []string, header []string, rows [][]string, widths []int, aligns []Alignment, style BorderStyle, wrapWidths []int, pageSize int) error {
	bc := borderSets[style]

	if len(titles) > 0 {
		// Full-width top border (no column separators).
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.horizontal, bc.topRight); err != nil {
			return err
		}
		inner := tableInnerWidth(widths) - 2 // subtract 1-space padding on each side
		for _, title := range titles {
			padded := alignCell(runewidth.Truncate(title, inner, "..."), inner, AlignCenter)
			if _, err := fmt.Fprintf(w, "%s %s %s\n", bc.vertical, padded, bc.vertical); err != nil {
				return err
			}
		}
		// Transition to columns.
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.topTee, bc.rightTee); err != nil {
			return err
		}
	} else {
		if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
			return err
		}
	}

	if err := drawBorderedRow(w, header, widths, aligns, bc.vertical, wrapWidths); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}

	for i, row := range rows {
		if pageSize > 0 && i > 0 && i%pageSize == 0 {
			if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
				return err
			}
			if err := drawBorderedRow(w, header, widths, aligns, bc.vertical, wrapWidths); err != nil {
				return err
			}
			if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
				return err
			}
		}
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical, wrapWidths); err != nil {
			return err
		}
	}

	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

// tableInnerWidth returns the total character width between the outer vertical
// borders of a bordered table. Each cell contributes its width plus 2 (one
// space of padding on each side), and cells are separated by a single vertical
// border character.
func tableInnerWidth(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w + 2
	}
	if len(widths) > 1 {
		n += len(widths) - 1
	}
	return n
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string, wrapWidths []int) error {
	for _, parts := range rowLines(cells, widths, aligns, wrapWidths) {
		line := vert + " " + strings.Join(parts, " "+vert+" ") + " " + vert
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTableCell(s string, width int, align Alignment) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			s = runewidth.Truncate(s, width, "")
		} else {
			s = runewidth.Truncate(s, width, "...")
		}
	}
	return alignCell(s, width, align)
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
