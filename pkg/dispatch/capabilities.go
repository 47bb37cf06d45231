package dispatch

import (
	"context"
	"log/slog"
	"time"

	"thoreinstein.com/tai/pkg/archive"
	"thoreinstein.com/tai/pkg/calc"
	"thoreinstein.com/tai/pkg/clipboard"
	"thoreinstein.com/tai/pkg/clock"
	"thoreinstein.com/tai/pkg/fsops"
	"thoreinstein.com/tai/pkg/imageops"
	"thoreinstein.com/tai/pkg/netfetch"
	"thoreinstein.com/tai/pkg/password"
	"thoreinstein.com/tai/pkg/procexec"
	"thoreinstein.com/tai/pkg/sysinfo"
	"thoreinstein.com/tai/pkg/textdiff"
	"thoreinstein.com/tai/pkg/textsearch"
	"thoreinstein.com/tai/pkg/watch"
)

// Filesystem reads and changes files and the working directory.
type Filesystem interface {
	List(dir string) ([]string, error)
	ReadFile(name string) (string, error)
	WriteFile(name, content string) error
	Remove(name string) error
	Getwd() (string, error)
	Chdir(dir string) error
	DirSize(root string) (int64, error)
	RenameMatching(dir, pattern, replacement string) ([]fsops.Rename, error)
}

// TextSearcher finds lines matching a regular expression.
type TextSearcher interface {
	Search(pattern, target string) ([]textsearch.Match, error)
}

// Fetcher performs HTTP GET requests.
type Fetcher interface {
	GetText(ctx context.Context, url string) (string, error)
	Download(ctx context.Context, url, filename string) error
}

// Extractor unpacks archives.
type Extractor interface {
	Extract(archivePath, dest string) error
}

// ImageEditor transforms image files and renders plots.
type ImageEditor interface {
	Resize(src, dst string, width, height int) error
	Convert(src, dst string) error
	PlotSine(path string, widthPx, heightPx int) error
}

// Evaluator computes arithmetic expressions.
type Evaluator interface {
	Evaluate(expr string) (float64, error)
}

// Clock reads the wall clock and waits.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Clipboard reads and writes clipboard text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// Watcher blocks reporting filesystem changes.
type Watcher interface {
	Watch(ctx context.Context, target string, h watch.Handlers) error
}

// ProcessLister reports the busiest processes.
type ProcessLister interface {
	Top(ctx context.Context, n int) ([]sysinfo.ProcessInfo, error)
}

// Differ renders unified diffs.
type Differ interface {
	Unified(a, b, fromName, toName string) (string, error)
}

// PasswordGenerator produces random passwords.
type PasswordGenerator interface {
	Generate(length int) (string, error)
}

// Capabilities bundles every side effect the dispatcher can perform.
type Capabilities struct {
	Files     Filesystem
	Search    TextSearcher
	Runner    procexec.Runner
	Profile   procexec.Profile
	Net       Fetcher
	Archives  Extractor
	Images    ImageEditor
	Calc      Evaluator
	Clock     Clock
	Clipboard Clipboard
	Watcher   Watcher
	Processes ProcessLister
	Differ    Differ
	Passwords PasswordGenerator
}

// SystemCapabilities returns capabilities backed by the local machine.
func SystemCapabilities(profile procexec.Profile, logger *slog.Logger) Capabilities {
	return Capabilities{
		Files:     fsops.New(),
		Search:    textsearch.New(),
		Runner:    procexec.NewExecRunner(logger),
		Profile:   profile,
		Net:       netfetch.New(nil),
		Archives:  archive.New(),
		Images:    imageops.New(),
		Calc:      calc.New(),
		Clock:     clock.New(),
		Clipboard: clipboard.New(),
		Watcher:   watch.New(logger),
		Processes: sysinfo.New(),
		Differ:    textdiff.New(),
		Passwords: password.New(),
	}
}
