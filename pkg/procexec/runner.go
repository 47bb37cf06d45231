// Package procexec runs external programs for the shell and selects the
// platform-specific programs used for shell commands, audio, speech and
// code snippets.
package procexec

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Spec describes one program invocation.
type Spec struct {
	Program string
	Args    []string
	Stdin   string // written to the program's standard input when non-empty
}

// String renders the invocation for logging.
func (s Spec) String() string {
	return strings.Join(append([]string{s.Program}, s.Args...), " ")
}

// Output is the captured result of a program that ran to completion.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the program exited with status zero.
func (o Output) Success() bool {
	return o.ExitCode == 0
}

// Runner runs a program to completion and captures its output.
//
// A non-zero exit is not an error: callers inspect Output.ExitCode. An error
// is returned only when the program could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Output, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct {
	logger *slog.Logger
}

// Compile-time check that ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates an ExecRunner. A nil logger discards log output.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExecRunner{logger: logger}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) (Output, error) {
	if spec.Program == "" {
		return Output{}, errors.New("no program to run")
	}

	// G204: running user-supplied commands is the purpose of this shell
	cmd := exec.CommandContext(ctx, spec.Program, spec.Args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(spec.Stdin)
	}

	r.logger.Debug("running program", "cmd", spec.String())

	err := cmd.Run()
	out := Output{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			r.logger.Debug("program exited", "cmd", spec.Program, "code", out.ExitCode)
			return out, nil
		}
		return out, err
	}

	return out, nil
}
