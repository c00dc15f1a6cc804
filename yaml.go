package gtable

import (
	"io"

	"gopkg.in/yaml.v3"
)

func writeYAML(w io.Writer, b *Built, cfg renderConfig) error {
	enc := yaml.NewEncoder(w)
	if cfg.indent != "" {
		enc.SetIndent(len(cfg.indent))
	}
	if err := enc.Encode(b.records()); err != nil {
		return err
	}
	return enc.Close()
}
