package gtable

import (
	"fmt"
	"io"
	"strings"
)

var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ", "\r", "")

func writeTSV(w io.Writer, b *Built) error {
	if err := writeTSVRow(w, b.Labels); err != nil {
		return err
	}
	for _, row := range b.Rows {
		if err := writeTSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTSVRow(w io.Writer, cells []string) error {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = tsvEscaper.Replace(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(out, "\t"))
	return err
}
