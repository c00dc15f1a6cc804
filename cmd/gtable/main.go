// Package main provides the gtable command, which renders CSV or XLSX data
// as a formatted table described by a YAML spec.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bjaus/gtable"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type renderFlags struct {
	data       string
	sheet      string
	spec       string
	outputs    []string
	format     string
	border     string
	rowNumbers string
	indent     string
	verbose    bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gtable",
		Short:        "Render tabular data as formatted tables",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newFormatsCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a CSV or XLSX file",
		Long: `render reads a CSV or XLSX file, applies the formats, substitutions and
column merges of a YAML spec, and writes the table to stdout or to one or
more output files. The output format follows each file's extension unless
--format is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "Input data file (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read from an XLSX file (default: first)")
	cmd.Flags().StringVarP(&f.spec, "spec", "s", "", "YAML table spec")
	cmd.Flags().StringSliceVarP(&f.outputs, "out", "o", nil, "Output file; repeat for several (default: stdout)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (default: from extension, else table)")
	cmd.Flags().StringVar(&f.border, "border", "rounded", "Border style: rounded, none, ascii, heavy, double")
	cmd.Flags().StringVar(&f.rowNumbers, "row-numbers", "", "Prepend a row number column with this header")
	cmd.Flags().StringVar(&f.indent, "indent", "", "Indentation for json and yaml output")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log build steps to stderr")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range gtable.Formats() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runRender(ctx context.Context, stdout, stderr io.Writer, f renderFlags) error {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	frame, err := readData(f.data, f.sheet)
	if err != nil {
		return err
	}
	spec := tableSpec{}
	if f.spec != "" {
		file, err := os.Open(f.spec)
		if err != nil {
			return fmt.Errorf("opening spec: %w", err)
		}
		defer file.Close()
		if spec, err = loadSpec(file); err != nil {
			return err
		}
	}
	t, err := gtable.New(frame, gtable.WithLogger(logger), gtable.WithLocale(spec.Locale))
	if err != nil {
		return err
	}
	if t, err = spec.apply(t); err != nil {
		return err
	}

	border, err := gtable.ParseBorderStyle(f.border)
	if err != nil {
		return err
	}
	opts := []gtable.RenderOption{gtable.WithBorder(border), gtable.WithIndent(f.indent)}
	if f.rowNumbers != "" {
		opts = append(opts, gtable.WithRowNumbers(f.rowNumbers))
	}

	if len(f.outputs) == 0 {
		format, err := outputFormat(f.format, "")
		if err != nil {
			return err
		}
		return gtable.Write(stdout, format, t, opts...)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, out := range f.outputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			format, err := outputFormat(f.format, out)
			if err != nil {
				return err
			}
			data, err := gtable.Marshal(format, t, opts...)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", out, err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			logger.Debug("wrote output", "path", out, "format", format.String(), "bytes", len(data))
			return nil
		})
	}
	return g.Wait()
}

func readData(path, sheet string) (gtable.Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		frame, err := gtable.ReadXLSX(path, sheet)
		if err != nil {
			return nil, err
		}
		return frame, nil
	case ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading data: %w", err)
		}
		frame, err := gtable.ReadCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return frame, nil
	default:
		return nil, fmt.Errorf("%w: data file %q must be .csv or .xlsx", gtable.ErrUnsupportedFormat, path)
	}
}

var extensionFormats = map[string]gtable.Format{
	".json":     gtable.JSON,
	".jsonl":    gtable.JSONL,
	".yaml":     gtable.YAML,
	".yml":      gtable.YAML,
	".csv":      gtable.CSV,
	".tsv":      gtable.TSV,
	".md":       gtable.Markdown,
	".markdown": gtable.Markdown,
	".html":     gtable.HTML,
	".htm":      gtable.HTML,
	".txt":      gtable.Text,
}

// outputFormat picks the explicit format, else the one implied by the output
// file's extension, else the text table.
func outputFormat(explicit, path string) (gtable.Format, error) {
	if explicit != "" {
		return gtable.ParseFormat(explicit)
	}
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return gtable.Text, nil
}
