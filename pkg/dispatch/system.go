package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tai/pkg/calc"
	"thoreinstein.com/tai/pkg/clock"
	"thoreinstein.com/tai/pkg/command"
	taierrors "thoreinstein.com/tai/pkg/errors"
	"thoreinstein.com/tai/pkg/watch"
)

// topProcessCount is how many processes "show top processes" lists.
const topProcessCount = 5

func (d *Dispatcher) systemInfo(_ context.Context, _ command.Parsed) (string, error) {
	return fmt.Sprintf("OS: %s\nArch: %s", d.opts.GOOS, d.opts.GOARCH), nil
}

func (d *Dispatcher) dateTime(_ context.Context, _ command.Parsed) (string, error) {
	return d.caps.Clock.Now().Format(clock.DateTimeLayout), nil
}

func (d *Dispatcher) calendar(_ context.Context, _ command.Parsed) (string, error) {
	return clock.Calendar(d.caps.Clock.Now()), nil
}

func (d *Dispatcher) help(_ context.Context, _ command.Parsed) (string, error) {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, u := range d.opts.Usages {
		b.WriteString("\n- ")
		b.WriteString(u)
	}
	return b.String(), nil
}

// calculate reports evaluation problems as output so a typo in an
// expression reads like the answer it replaced.
func (d *Dispatcher) calculate(_ context.Context, p command.Parsed) (string, error) {
	v, err := d.caps.Calc.Evaluate(p.Arg(0))
	if err != nil {
		return "Error: " + err.Error(), nil
	}
	return calc.Format(v), nil
}

func (d *Dispatcher) password(_ context.Context, p command.Parsed) (string, error) {
	n := p.Number(0)
	if n > d.opts.MaxPasswordLength {
		return "", taierrors.NewInvalidArgumentError("password",
			fmt.Sprintf("length %d exceeds the maximum of %d", n, d.opts.MaxPasswordLength), nil)
	}
	return d.caps.Passwords.Generate(n)
}

func (d *Dispatcher) topProcesses(ctx context.Context, _ command.Parsed) (string, error) {
	procs, err := d.caps.Processes.Top(ctx, topProcessCount)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Top processes:")
	for _, proc := range procs {
		fmt.Fprintf(&b, "\n%s (pid %d): %.2f%% CPU, %d KB RAM", proc.Name, proc.PID, proc.CPUPercent, proc.MemoryKB)
	}
	return b.String(), nil
}

func (d *Dispatcher) explain(_ context.Context, p command.Parsed) (string, error) {
	return fmt.Sprintf("[Explanation for shell command: '%s']", p.Arg(0)), nil
}

func (d *Dispatcher) copyClipboard(_ context.Context, p command.Parsed) (string, error) {
	if err := d.caps.Clipboard.Write(p.Arg(0)); err != nil {
		return "", err
	}
	return "Copied to clipboard.", nil
}

func (d *Dispatcher) pasteClipboard(_ context.Context, _ command.Parsed) (string, error) {
	text, err := d.caps.Clipboard.Read()
	if err != nil {
		return "", err
	}
	return "Clipboard: " + text, nil
}

// watch blocks until ctx is done, streaming each change to the progress
// writer.
func (d *Dispatcher) watch(ctx context.Context, p command.Parsed) (string, error) {
	target := p.Arg(0)
	err := d.caps.Watcher.Watch(ctx, target, watch.Handlers{
		OnReady: func() {
			d.progressf("Watching %s for changes. Press Ctrl+C to stop.", target)
		},
		OnEvent: func(e watch.Event) {
			d.progressf("Change detected: %s %s", e.Op, e.Path)
		},
		OnError: func(err error) {
			d.progressf("Watch error: %v", err)
		},
	})
	if errors.Is(err, watch.ErrTargetNotFound) {
		return fmt.Sprintf("Target '%s' not found", target), nil
	}
	if err != nil {
		return "", err
	}
	return "Stopped watching.", nil
}
