package gtable

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var imageSplitRe = regexp.MustCompile(`,\s*`)

const imageSpan = `<span style="white-space:nowrap;">%s</span>`

type imageFormatter struct {
	height      string
	width       string
	sep         string
	path        string
	filePattern string
	encode      bool
}

func newImageFormatter(cfg formatConfig) imageFormatter {
	f := imageFormatter{
		height:      cfg.height,
		width:       cfg.width,
		sep:         cfg.sep,
		path:        cfg.path,
		filePattern: cfg.filePattern,
		encode:      cfg.encode,
	}
	if f.height == "" && f.width == "" {
		f.height = "2em"
	}
	return f
}

func (f imageFormatter) fns() FormatFns {
	return FormatFns{
		ContextDefault: f.html,
		ContextHTML:    f.html,
		ContextLaTeX: func(any) (string, error) {
			return "", ErrSkipCell
		},
	}
}

func (f imageFormatter) html(v any) (string, error) {
	val := stringify(v)
	files := []string{val}
	if strings.Contains(val, ",") {
		files = imageSplitRe.Split(val, -1)
	}
	tags := make([]string, len(files))
	for i, file := range files {
		file = strings.ReplaceAll(f.filePattern, "{}", file)
		uri, err := f.uri(file)
		if err != nil {
			return "", err
		}
		tags[i] = imgTag(uri, f.height, f.width)
	}
	return fmt.Sprintf(imageSpan, strings.Join(tags, f.sep)), nil
}

func (f imageFormatter) uri(file string) (string, error) {
	switch {
	case f.path == "" && isHTTP(file):
		return strings.TrimSuffix(strings.TrimRight(file, " \t\n"), "/"), nil
	case f.path != "" && isHTTP(f.path):
		return strings.TrimSuffix(strings.TrimRight(f.path, " \t\n"), "/") + "/" + file, nil
	}
	name, err := expandPath(filepath.Join(f.path, file))
	if err != nil {
		return "", err
	}
	if !f.encode {
		return name, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	return "data:" + imageMimeType(name) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func expandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}

func imageMimeType(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	switch ext {
	case "svg":
		return "image/svg+xml"
	case "jpg":
		return "image/jpeg"
	}
	if t := mime.TypeByExtension("." + ext); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/" + ext
}

func imgTag(uri, height, width string) string {
	var style strings.Builder
	if height != "" {
		style.WriteString("height: " + height + ";")
	}
	if width != "" {
		style.WriteString("width: " + width + ";")
	}
	style.WriteString("vertical-align: middle;")
	return fmt.Sprintf(`<img src="%s" style="%s">`, uri, style.String())
}
