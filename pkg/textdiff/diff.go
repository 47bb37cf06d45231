// Package textdiff renders line-based unified diffs.
package textdiff

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Differ compares texts line by line.
type Differ struct{}

// New creates a Differ.
func New() *Differ {
	return &Differ{}
}

// Unified returns the unified diff turning a into b, with "--- fromName"
// and "+++ toName" headers. Identical inputs produce an empty string.
func (d *Differ) Unified(a, b, fromName, toName string) (string, error) {
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(a),
		B:        splitLines(b),
		FromFile: fromName,
		ToFile:   toName,
		Context:  contextLines,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to render diff")
	}
	return out, nil
}

// splitLines splits s into lines that keep their trailing newline. A final
// line without one gets it appended, so the last line compares equal
// whether or not the file ends in a newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
