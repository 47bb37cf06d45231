package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tai/pkg/command"
	"thoreinstein.com/tai/pkg/textsearch"
)

// summaryLines is how many non-blank lines a summary keeps.
const summaryLines = 5

func (d *Dispatcher) search(_ context.Context, p command.Parsed) (string, error) {
	target := p.Arg(1)
	matches, err := d.caps.Search.Search(p.Arg(0), target)
	if errors.Is(err, textsearch.ErrTargetNotFound) {
		return fmt.Sprintf("Target '%s' not found", target), nil
	}
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "No matches found.", nil
	}

	lines := make([]string, len(matches))
	for i, m := range matches {
		lines[i] = fmt.Sprintf("%s:%d: %s", m.Path, m.Line, m.Text)
	}
	return strings.Join(lines, "\n"), nil
}

func (d *Dispatcher) summarize(_ context.Context, p command.Parsed) (string, error) {
	content, err := d.caps.Files.ReadFile(p.Arg(0))
	if err != nil {
		return "", err
	}
	summary := textsearch.Summarize(content, summaryLines)
	if len(summary) == 0 {
		return "File is empty or contains no summary lines.", nil
	}
	return "Summary:\n" + strings.Join(summary, "\n"), nil
}

func (d *Dispatcher) countLines(_ context.Context, p command.Parsed) (string, error) {
	return d.count(p.Arg(0), "lines", textsearch.CountLines)
}

func (d *Dispatcher) countWords(_ context.Context, p command.Parsed) (string, error) {
	return d.count(p.Arg(0), "words", textsearch.CountWords)
}

func (d *Dispatcher) countChars(_ context.Context, p command.Parsed) (string, error) {
	return d.count(p.Arg(0), "chars", textsearch.CountChars)
}

func (d *Dispatcher) count(name, stat string, counter func(string) int) (string, error) {
	content, err := d.caps.Files.ReadFile(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d", stat, counter(content)), nil
}

func (d *Dispatcher) diff(_ context.Context, p command.Parsed) (string, error) {
	from, to := p.Arg(0), p.Arg(1)

	a, err := d.caps.Files.ReadFile(from)
	if err != nil {
		return "", err
	}
	b, err := d.caps.Files.ReadFile(to)
	if err != nil {
		return "", err
	}

	out, err := d.caps.Differ.Unified(a, b, from, to)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "No differences.", nil
	}
	return strings.TrimRight(out, "\n"), nil
}
