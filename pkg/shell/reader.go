package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// LineReader yields one input line at a time. ReadLine returns io.EOF when
// input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// PlainReader prompts on a writer and reads newline-terminated lines. It is
// used when standard input is not a terminal.
type PlainReader struct {
	reader *bufio.Reader
	writer io.Writer
	prompt string
}

var _ LineReader = (*PlainReader)(nil)

// NewPlainReader creates a PlainReader.
func NewPlainReader(r io.Reader, w io.Writer, prompt string) *PlainReader {
	return &PlainReader{reader: bufio.NewReader(r), writer: w, prompt: prompt}
}

// ReadLine prints the prompt and reads one line without its terminator. A
// final line lacking a newline is returned before io.EOF.
func (p *PlainReader) ReadLine() (string, error) {
	fmt.Fprint(p.writer, p.prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op.
func (p *PlainReader) Close() error {
	return nil
}

// TerminalReader reads lines with editing, history and phrase completion.
type TerminalReader struct {
	rl *readline.Instance
}

var _ LineReader = (*TerminalReader)(nil)

// NewTerminalReader creates a TerminalReader whose completions are the
// given phrases. History is kept in memory only.
func NewTerminalReader(prompt string, historyLimit int, phrases []string) (*TerminalReader, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(phrases)+1)
	for _, p := range phrases {
		items = append(items, readline.PcItem(p))
	}
	items = append(items, readline.PcItem("exit"))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryLimit:    historyLimit,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize line editor")
	}
	return &TerminalReader{rl: rl}, nil
}

// ReadLine reads one edited line. Ctrl+C discards the current line and
// prompts again; Ctrl+D on an empty line returns io.EOF.
func (t *TerminalReader) ReadLine() (string, error) {
	for {
		line, err := t.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		return line, err
	}
}

// Close restores the terminal.
func (t *TerminalReader) Close() error {
	return t.rl.Close()
}

// NewLineReader picks a TerminalReader when in is a terminal and a
// PlainReader otherwise.
func NewLineReader(in *os.File, out io.Writer, prompt string, historyLimit int, phrases []string) (LineReader, error) {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminalReader(prompt, historyLimit, phrases)
	}
	return NewPlainReader(in, out, prompt), nil
}
