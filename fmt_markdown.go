package gtable

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Inline raw HTML passes through untouched.
var markdownRenderer = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))

// markdownHTML converts CommonMark to HTML, dropping the paragraph wrapper of
// a single-line value.
func markdownHTML(s string) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	out := strings.TrimPrefix(buf.String(), "<p>")
	return strings.TrimSuffix(out, "</p>\n"), nil
}

func markdownFns() FormatFns {
	toHTML := func(v any) (string, error) {
		return markdownHTML(stringify(v))
	}
	return FormatFns{
		ContextDefault: toHTML,
		ContextHTML:    toHTML,
		ContextLaTeX: func(any) (string, error) {
			return "", fmt.Errorf("%w: markdown cannot be rendered to LaTeX", ErrUnsupportedFormat)
		},
	}
}
