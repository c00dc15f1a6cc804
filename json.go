package gtable

import (
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, b *Built, cfg renderConfig) error {
	enc := json.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent("", cfg.indent)
	}
	return enc.Encode(b.records())
}
