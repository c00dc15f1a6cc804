package gtable

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

const (
	sectionOpen  = "<<"
	sectionClose = ">>"

	// missingToken stands in for a missing value while sections resolve.
	// It contains NUL bytes so it cannot collide with rendered text.
	missingToken = "\x00gtable:missing\x00"

	// maxSectionPasses bounds section resolution on pathological patterns.
	maxSectionPasses = 100
)

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// ExtractPlaceholders returns the column indices referenced by pattern in
// first-seen order, without duplicates.
func ExtractPlaceholders(pattern string) []int {
	var out []int
	seen := make(map[int]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ValidatePattern checks that every placeholder in pattern refers to one of
// n columns. The returned error is a *[PatternError].
// An index too large to parse is out of range and reported as -1.
func ValidatePattern(pattern string, n int) error {
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return &PatternError{Pattern: pattern, Index: -1, Columns: n}
		}
		if idx >= n {
			return &PatternError{Pattern: pattern, Index: idx, Columns: n}
		}
	}
	return nil
}

// renderPattern substitutes values into pattern and resolves conditional
// sections. values[i] is used for {i} unless missing[i] is set; indices with
// no value are treated as missing.
func renderPattern(pattern string, values []string, missing []bool, logger *slog.Logger) string {
	s := placeholderRe.ReplaceAllStringFunc(pattern, func(m string) string {
		idx, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || idx >= len(values) || (idx < len(missing) && missing[idx]) {
			return missingToken
		}
		return values[idx]
	})
	s = resolveSections(s, logger)
	return strings.ReplaceAll(s, missingToken, "NA")
}

// resolveSections collapses <<...>> sections innermost first. A section whose
// interior holds a missing token disappears along with its delimiters;
// otherwise only the delimiters are removed. Unmatched markers are left as
// literal text.
func resolveSections(s string, logger *slog.Logger) string {
	for pass := 0; ; pass++ {
		start, stop := innermostSection(s)
		if start < 0 {
			return s
		}
		if pass == maxSectionPasses {
			if logger != nil {
				logger.Warn("merge pattern section limit reached", "passes", maxSectionPasses)
			}
			return s
		}
		inner := s[start+len(sectionOpen) : stop]
		if strings.Contains(inner, missingToken) {
			inner = ""
		}
		s = s[:start] + inner + s[stop+len(sectionClose):]
	}
}

// innermostSection finds the right-most "<<" that has a ">>" after it and the
// first ">>" following it. It returns -1, -1 when no such pair exists.
func innermostSection(s string) (int, int) {
	end := len(s)
	for {
		open := strings.LastIndex(s[:end], sectionOpen)
		if open < 0 {
			return -1, -1
		}
		if rel := strings.Index(s[open+len(sectionOpen):], sectionClose); rel >= 0 {
			return open, open + len(sectionOpen) + rel
		}
		end = open
	}
}
