// Package textsearch provides regular-expression search over files and the
// line, word and character statistics used by the count and summarize
// actions.
package textsearch

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	taierrors "thoreinstein.com/tai/pkg/errors"
)

// ErrTargetNotFound is returned by Search when the target is neither a
// regular file nor a directory.
var ErrTargetNotFound = errors.New("target not found")

// Match is one matching line.
type Match struct {
	Path string
	Line int // 1-based
	Text string
}

// Searcher searches files line by line.
type Searcher struct{}

// New creates a Searcher.
func New() *Searcher {
	return &Searcher{}
}

// Search reports every line matching pattern in target. A file target is
// searched directly; a directory target has each of its immediate regular
// files searched in name order. Files that are not valid UTF-8 are skipped.
func (s *Searcher) Search(pattern, target string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, taierrors.NewInvalidArgumentError("search", "invalid pattern", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	switch {
	case info.Mode().IsRegular():
		return searchFile(re, target)
	case info.IsDir():
		return searchDir(re, target)
	default:
		return nil, ErrTargetNotFound
	}
}

func searchDir(re *regexp.Regexp, dir string) ([]Match, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !e.Type().IsRegular() {
			// Symlinks count when they resolve to a regular file.
			if e.Type()&fs.ModeSymlink == 0 {
				continue
			}
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		found, err := searchFile(re, path)
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	return matches, nil
}

func searchFile(re *regexp.Regexp, path string) ([]Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, nil
	}

	var matches []Match
	for i, line := range Lines(string(data)) {
		if re.MatchString(line) {
			matches = append(matches, Match{Path: path, Line: i + 1, Text: line})
		}
	}
	return matches, nil
}

// Lines splits content into lines. A trailing newline does not start an
// extra empty line, and a carriage return before a newline is dropped.
func Lines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// CountLines returns the number of lines in content.
func CountLines(content string) int {
	return len(Lines(content))
}

// CountWords returns the number of whitespace-separated words in content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// CountChars returns the number of Unicode code points in content.
func CountChars(content string) int {
	return utf8.RuneCountInString(content)
}

// Summarize returns the first n non-blank lines of content.
func Summarize(content string, n int) []string {
	var summary []string
	for _, l := range Lines(content) {
		if len(summary) == n {
			break
		}
		if strings.TrimSpace(l) == "" {
			continue
		}
		summary = append(summary, l)
	}
	return summary
}
