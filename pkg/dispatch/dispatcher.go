// Package dispatch performs matched shell actions.
//
// The Dispatcher maps each command.Action to exactly one handler. Handlers
// call a single capability and turn its outcome into the text the user sees.
// Expected absences and unsupported options are ordinary output; capability
// errors become failures carrying a classified taierrors.ActionError. A
// handler never lets an error or panic escape Dispatch.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"thoreinstein.com/tai/pkg/command"
	taierrors "thoreinstein.com/tai/pkg/errors"
)

// Options tunes a Dispatcher. Zero values select defaults.
type Options struct {
	// Usages are the help lines, one per rule, in match order.
	Usages []string

	// Progress receives interim lines from long-running actions such as
	// watch and schedule.
	Progress io.Writer

	Logger *slog.Logger

	GOOS   string
	GOARCH string

	WeatherEndpoint   string
	PlotPath          string
	PlotWidth         int
	PlotHeight        int
	MaxPasswordLength int
}

type handler func(ctx context.Context, p command.Parsed) (string, error)

// Dispatcher executes parsed commands against a set of capabilities.
type Dispatcher struct {
	caps     Capabilities
	opts     Options
	logger   *slog.Logger
	handlers map[command.Action]handler
}

// New creates a Dispatcher.
func New(caps Capabilities, opts Options) *Dispatcher {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.GOARCH == "" {
		opts.GOARCH = runtime.GOARCH
	}
	if opts.WeatherEndpoint == "" {
		opts.WeatherEndpoint = "https://wttr.in"
	}
	if opts.PlotPath == "" {
		opts.PlotPath = "sine_wave.png"
	}
	if opts.PlotWidth <= 0 || opts.PlotHeight <= 0 {
		opts.PlotWidth, opts.PlotHeight = 640, 480
	}
	if opts.MaxPasswordLength <= 0 {
		opts.MaxPasswordLength = 4096
	}

	d := &Dispatcher{caps: caps, opts: opts, logger: opts.Logger}
	d.handlers = map[command.Action]handler{
		command.ActionListFiles:      d.listFiles,
		command.ActionCalculate:      d.calculate,
		command.ActionPlotSine:       d.plotSine,
		command.ActionShowCwd:        d.showCwd,
		command.ActionChangeDir:      d.changeDir,
		command.ActionShowFile:       d.showFile,
		command.ActionWriteFile:      d.writeFile,
		command.ActionDeleteFile:     d.deleteFile,
		command.ActionSystemInfo:     d.systemInfo,
		command.ActionDateTime:       d.dateTime,
		command.ActionHelp:           d.help,
		command.ActionSearch:         d.search,
		command.ActionSummarize:      d.summarize,
		command.ActionCountLines:     d.countLines,
		command.ActionCountWords:     d.countWords,
		command.ActionCountChars:     d.countChars,
		command.ActionDiskUsage:      d.diskUsage,
		command.ActionTopProcesses:   d.topProcesses,
		command.ActionDownload:       d.download,
		command.ActionExtract:        d.extract,
		command.ActionPassword:       d.password,
		command.ActionCalendar:       d.calendar,
		command.ActionWeather:        d.weather,
		command.ActionExplain:        d.explain,
		command.ActionRunCode:        d.runCode,
		command.ActionRunShell:       d.runShell,
		command.ActionDiff:           d.diff,
		command.ActionBatchRename:    d.batchRename,
		command.ActionResizeImage:    d.resizeImage,
		command.ActionConvertImage:   d.convertImage,
		command.ActionPlayAudio:      d.playAudio,
		command.ActionConvertAudio:   d.convertAudio,
		command.ActionSpeak:          d.speak,
		command.ActionCopyClipboard:  d.copyClipboard,
		command.ActionPasteClipboard: d.pasteClipboard,
		command.ActionWatch:          d.watch,
		command.ActionSchedule:       d.schedule,
		command.ActionAlias:          d.runShell,
	}
	return d
}

// Dispatch performs p and returns its normalized result.
func (d *Dispatcher) Dispatch(ctx context.Context, p command.Parsed) (res Result) {
	h, ok := d.handlers[p.Action]
	if !ok {
		return NoMatch()
	}

	action := p.Action.String()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("action panicked", "action", action, "panic", r)
			res = Failure(taierrors.NewIOError(action, fmt.Sprintf("internal error: %v", r), nil))
		}
	}()

	d.logger.Debug("dispatching", "action", action, "args", p.Args, "numbers", p.Numbers)

	out, err := h(ctx, p)
	if err != nil {
		classified := taierrors.Classify(action, err)
		d.logger.Debug("action failed", "action", action, "kind", classified.Kind, "error", err)
		return Failure(classified)
	}
	return Output(out)
}

// progressf writes one interim line.
func (d *Dispatcher) progressf(format string, args ...any) {
	fmt.Fprintf(d.opts.Progress, format+"\n", args...)
}
