package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tai/pkg/clock"
	"thoreinstein.com/tai/pkg/command"
	taierrors "thoreinstein.com/tai/pkg/errors"
	"thoreinstein.com/tai/pkg/procexec"
)

// runShell serves both run-shell and alias rules: Args[0] is the command.
func (d *Dispatcher) runShell(ctx context.Context, p command.Parsed) (string, error) {
	return d.shell(ctx, p.Arg(0))
}

func (d *Dispatcher) shell(ctx context.Context, cmd string) (string, error) {
	out, err := d.caps.Runner.Run(ctx, d.caps.Profile.ShellCommand(cmd))
	if err != nil {
		return "", err
	}
	return formatOutput(out), nil
}

func (d *Dispatcher) runCode(ctx context.Context, p command.Parsed) (string, error) {
	spec, ok := d.caps.Profile.Snippet(p.Arg(0), p.Arg(1))
	if !ok {
		return "Unsupported language. Supported: python, javascript, bash.", nil
	}
	out, err := d.caps.Runner.Run(ctx, spec)
	if err != nil {
		return "", err
	}
	return formatOutput(out), nil
}

func (d *Dispatcher) schedule(ctx context.Context, p command.Parsed) (string, error) {
	cmd, at := p.Arg(0), p.Arg(1)

	hour, minute, err := clock.ParseTimeOfDay(at)
	if err != nil {
		return "", err
	}

	wait := clock.UntilNext(d.caps.Clock.Now(), hour, minute)
	d.progressf("Scheduling command '%s' to run in %d seconds (at %s).", cmd, int64(wait.Seconds()), at)

	if err := d.caps.Clock.Sleep(ctx, wait); err != nil {
		return "", errors.Wrap(err, "schedule interrupted")
	}

	out, err := d.shell(ctx, cmd)
	if err != nil {
		return "", err
	}
	return "Scheduled command output:\n" + out, nil
}

func (d *Dispatcher) playAudio(ctx context.Context, p command.Parsed) (string, error) {
	spec, ok := d.caps.Profile.PlayAudio(p.Arg(0))
	if !ok {
		return "Audio playback not supported on this OS.", nil
	}
	if err := d.runTool(ctx, spec); err != nil {
		return "", taierrors.NewExternalToolError("play-audio", "Failed to play audio.", err)
	}
	return "Audio played successfully.", nil
}

func (d *Dispatcher) convertAudio(ctx context.Context, p command.Parsed) (string, error) {
	src := p.Arg(0)
	dst := src + "." + p.Arg(1)
	if err := d.runTool(ctx, d.caps.Profile.ConvertAudio(src, dst)); err != nil {
		return "", taierrors.NewExternalToolError("convert-audio",
			"Failed to convert audio. Ensure ffmpeg is installed.", err)
	}
	return "Converted audio saved to " + dst, nil
}

func (d *Dispatcher) speak(ctx context.Context, p command.Parsed) (string, error) {
	spec, ok := d.caps.Profile.Speak(p.Arg(0))
	if !ok {
		return "Text-to-speech not supported on this OS.", nil
	}
	if err := d.runTool(ctx, spec); err != nil {
		return "", taierrors.NewExternalToolError("speak", "Failed to speak text.", err)
	}
	return "Spoken successfully.", nil
}

// runTool runs spec and treats a non-zero exit as an error.
func (d *Dispatcher) runTool(ctx context.Context, spec procexec.Spec) error {
	out, err := d.caps.Runner.Run(ctx, spec)
	if err != nil {
		return err
	}
	if !out.Success() {
		d.logger.Debug("tool failed", "command", spec.String(), "exit_code", out.ExitCode, "stderr", out.Stderr)
		return errors.Newf("%s exited with status %d", spec.Program, out.ExitCode)
	}
	return nil
}

// formatOutput renders captured output as stdout followed by any non-blank
// stderr.
func formatOutput(out procexec.Output) string {
	if strings.TrimSpace(out.Stderr) == "" {
		return out.Stdout
	}
	return fmt.Sprintf("%s\n[stderr]: %s", out.Stdout, out.Stderr)
}
