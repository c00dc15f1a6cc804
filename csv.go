package gtable

import (
	"encoding/csv"
	"io"
)

func writeCSV(w io.Writer, b *Built, cfg renderConfig) error {
	cw := csv.NewWriter(w)
	cw.Comma = cfg.delimiter
	if err := cw.Write(b.Labels); err != nil {
		return err
	}
	if err := cw.WriteAll(b.Rows); err != nil {
		return err
	}
	return cw.Error()
}
