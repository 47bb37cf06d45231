// Package shell runs the interactive read-match-dispatch loop.
package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tai/pkg/command"
	"thoreinstein.com/tai/pkg/dispatch"
)

const (
	welcome     = "Welcome to TerminalAI! Type your commands below. Type 'exit' to quit."
	farewell    = "Goodbye!"
	readFailure = "Error reading input. Exiting."
)

// Matcher classifies input lines.
type Matcher interface {
	Match(line string) (command.Parsed, bool)
}

// Dispatcher performs matched commands.
type Dispatcher interface {
	Dispatch(ctx context.Context, p command.Parsed) dispatch.Result
}

// Shell is one interactive session.
type Shell struct {
	matcher    Matcher
	dispatcher Dispatcher
	reader     LineReader
	out        io.Writer
	logger     *slog.Logger
}

// New creates a Shell reading from reader and printing to out.
func New(m Matcher, d Dispatcher, reader LineReader, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shell{matcher: m, dispatcher: d, reader: reader, out: out, logger: logger}
}

// Run prints the welcome line and processes input until "exit", end of
// input, or a read error. Every outcome ends the session normally.
func (s *Shell) Run(ctx context.Context) error {
	defer s.reader.Close()

	s.println(welcome)

	for {
		line, err := s.reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.println(farewell)
				return nil
			}
			s.logger.Debug("read failed", "error", err)
			s.println(readFailure)
			return nil
		}

		input := strings.TrimSpace(line)
		if strings.EqualFold(input, "exit") {
			s.println(farewell)
			return nil
		}

		s.println(s.Execute(ctx, input).Render())
	}
}

// Execute matches and dispatches one trimmed input line.
func (s *Shell) Execute(ctx context.Context, input string) dispatch.Result {
	p, ok := s.matcher.Match(input)
	if !ok {
		s.logger.Debug("no rule matched", "input", input)
		return dispatch.NoMatch()
	}
	return s.dispatcher.Dispatch(ctx, p)
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}
