package fs

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	"fpath-go/internal/fpath"
)

// IgnoreFileName is the per-installation ignore file read from the base directory.
const IgnoreFileName = ".fpathignore"

// defaultIgnorePatterns are always applied regardless of config or ignore file.
var defaultIgnorePatterns = []string{IgnoreFileName}

// ignorePattern is a parsed ignore pattern with its matching strategy.
type ignorePattern struct {
	pattern   string
	matchPath bool // true = match against leading segments; false = match against each segment
}

// IgnoreMatcher checks root-relative paths against a set of ignore patterns.
// Patterns without '/' match any single segment, so "node_modules" also hides
// everything below it. Patterns with '/' match the leading segments of the
// path written with forward slashes.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw pattern strings plus the
// defaults. Blank lines and lines starting with '#' are skipped; malformed
// globs are dropped.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	var patterns []ignorePattern
	for _, raw := range append(append([]string{}, defaultIgnorePatterns...), rawPatterns...) {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		raw = strings.Trim(strings.ReplaceAll(raw, `\`, "/"), "/")
		if _, err := path.Match(raw, ""); err != nil {
			continue
		}
		patterns = append(patterns, ignorePattern{
			pattern:   raw,
			matchPath: strings.Contains(raw, "/"),
		})
	}
	return &IgnoreMatcher{patterns: patterns}
}

// Match reports whether rel, a path relative to a tracked root, is ignored.
func (m *IgnoreMatcher) Match(rel fpath.Path) bool {
	segs := rel.Segments()
	if len(m.patterns) == 0 || len(segs) == 0 {
		return false
	}

	for _, p := range m.patterns {
		if p.matchPath {
			for n := 1; n <= len(segs); n++ {
				if ok, _ := path.Match(p.pattern, strings.Join(segs[:n], "/")); ok {
					return true
				}
			}
			continue
		}
		for _, s := range segs {
			if ok, _ := path.Match(p.pattern, s); ok {
				return true
			}
		}
	}
	return false
}

// ParseIgnoreFile reads an ignore file and returns its raw lines.
// Returns nil and no error if the file does not exist.
func ParseIgnoreFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return patterns, nil
}
