package gtable

import (
	"encoding/json"
	"io"
)

func writeJSONL(w io.Writer, b *Built, cfg renderConfig) error {
	enc := json.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent("", cfg.indent)
	}
	for _, rec := range b.records() {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
