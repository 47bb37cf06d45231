package dispatch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/tai/pkg/calc"
	"thoreinstein.com/tai/pkg/command"
	taierrors "thoreinstein.com/tai/pkg/errors"
	"thoreinstein.com/tai/pkg/fsops"
	"thoreinstein.com/tai/pkg/password"
	"thoreinstein.com/tai/pkg/procexec"
	"thoreinstein.com/tai/pkg/sysinfo"
	"thoreinstein.com/tai/pkg/textdiff"
	"thoreinstein.com/tai/pkg/textsearch"
	"thoreinstein.com/tai/pkg/watch"
)

// fakeRunner records invocations and replays a canned result.
type fakeRunner struct {
	specs []procexec.Spec
	out   procexec.Output
	err   error
}

func (f *fakeRunner) Run(_ context.Context, spec procexec.Spec) (procexec.Output, error) {
	f.specs = append(f.specs, spec)
	return f.out, f.err
}

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.slept = append(f.slept, d)
	return nil
}

type fakeImages struct {
	resized   []string
	converted []string
	plotted   string
}

func (f *fakeImages) Resize(src, dst string, width, height int) error {
	f.resized = append(f.resized, src, dst)
	return nil
}

func (f *fakeImages) Convert(src, dst string) error {
	f.converted = append(f.converted, src, dst)
	return nil
}

func (f *fakeImages) PlotSine(path string, widthPx, heightPx int) error {
	f.plotted = path
	return nil
}

type fakeNet struct {
	urls []string
	body string
	err  error
}

func (f *fakeNet) GetText(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func (f *fakeNet) Download(_ context.Context, url, filename string) error {
	f.urls = append(f.urls, url)
	return f.err
}

type fakeExtractor struct {
	calls int
}

func (f *fakeExtractor) Extract(archivePath, dest string) error {
	f.calls++
	return nil
}

type fakeClipboard struct {
	text string
}

func (f *fakeClipboard) Read() (string, error) { return f.text, nil }

func (f *fakeClipboard) Write(text string) error {
	f.text = text
	return nil
}

// fakeWatcher reports a fixed sequence of events, then returns err.
type fakeWatcher struct {
	events []watch.Event
	err    error
}

func (f *fakeWatcher) Watch(_ context.Context, target string, h watch.Handlers) error {
	if f.err != nil {
		return f.err
	}
	h.OnReady()
	for _, e := range f.events {
		h.OnEvent(e)
	}
	h.OnError(errors.New("queue overflow"))
	return nil
}

type fakeProcesses struct {
	procs []sysinfo.ProcessInfo
}

func (f *fakeProcesses) Top(_ context.Context, n int) ([]sysinfo.ProcessInfo, error) {
	return sysinfo.TopN(f.procs, n), nil
}

type panickyEvaluator struct{}

func (panickyEvaluator) Evaluate(string) (float64, error) {
	panic("boom")
}

type harness struct {
	matcher  *command.Matcher
	disp     *Dispatcher
	runner   *fakeRunner
	clock    *fakeClock
	images   *fakeImages
	net      *fakeNet
	extract  *fakeExtractor
	clip     *fakeClipboard
	watcher  *fakeWatcher
	progress *bytes.Buffer
}

// newHarness builds a dispatcher whose filesystem, search, calculator,
// differ and password capabilities are real and whose side-effecting
// capabilities are fakes. The working directory is a fresh temp dir.
func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Chdir(t.TempDir())

	h := &harness{
		matcher:  command.NewMatcher(),
		runner:   &fakeRunner{},
		clock:    &fakeClock{now: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.Local)},
		images:   &fakeImages{},
		net:      &fakeNet{},
		extract:  &fakeExtractor{},
		clip:     &fakeClipboard{},
		watcher:  &fakeWatcher{},
		progress: &bytes.Buffer{},
	}

	caps := Capabilities{
		Files:     fsops.New(),
		Search:    textsearch.New(),
		Runner:    h.runner,
		Profile:   procexec.ProfileFor("linux"),
		Net:       h.net,
		Archives:  h.extract,
		Images:    h.images,
		Calc:      calc.New(),
		Clock:     h.clock,
		Clipboard: h.clip,
		Watcher:   h.watcher,
		Processes: &fakeProcesses{},
		Differ:    textdiff.New(),
		Passwords: password.New(),
	}
	h.disp = New(caps, Options{
		Usages:   h.matcher.Usages(),
		Progress: h.progress,
		GOOS:     "linux",
		GOARCH:   "amd64",
	})
	return h
}

// run matches and dispatches line the way the shell does.
func (h *harness) run(t *testing.T, line string) Result {
	t.Helper()
	p, ok := h.matcher.Match(line)
	if !ok {
		return NoMatch()
	}
	return h.disp.Dispatch(context.Background(), p)
}

func (h *harness) output(t *testing.T, line string) string {
	t.Helper()
	res := h.run(t, line)
	if res.Kind != ResultOutput {
		t.Fatalf("%q: kind = %v, render = %q; want output", line, res.Kind, res.Render())
	}
	return res.Text
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDispatch_Calculate(t *testing.T) {
	h := newHarness(t)

	if got := h.output(t, "calculate 2 + 2 * 3"); got != "8" {
		t.Errorf("calculate 2 + 2 * 3 = %q, want %q", got, "8")
	}
	if got := h.output(t, "calculate 7 / 2"); got != "3.5" {
		t.Errorf("calculate 7 / 2 = %q, want %q", got, "3.5")
	}

	// Evaluation errors are output, not failures.
	if got := h.output(t, "calculate 2 +"); !strings.HasPrefix(got, "Error: ") {
		t.Errorf("calculate 2 + = %q, want Error: prefix", got)
	}
}

func TestDispatch_WriteThenShow(t *testing.T) {
	h := newHarness(t)

	if got := h.output(t, "write to file f.txt: hello"); got != "Wrote to file f.txt" {
		t.Errorf("write = %q", got)
	}
	if got := h.output(t, "show file f.txt"); got != "hello" {
		t.Errorf("show file = %q, want %q", got, "hello")
	}
	if got := h.output(t, "delete file f.txt"); got != "Deleted file f.txt" {
		t.Errorf("delete = %q", got)
	}

	res := h.run(t, "show file f.txt")
	if res.Kind != ResultFailure {
		t.Fatalf("show deleted file kind = %v, want failure", res.Kind)
	}
	if !taierrors.IsNotFound(res.Err) {
		t.Errorf("show deleted file error = %v, want not found", res.Err)
	}
	if !strings.HasPrefix(res.Render(), "Error: ") {
		t.Errorf("Render() = %q, want Error: prefix", res.Render())
	}
}

func TestDispatch_ShowCwdIsIdempotent(t *testing.T) {
	h := newHarness(t)

	first := h.output(t, "show current directory")
	second := h.output(t, "show current directory")
	if first != second {
		t.Errorf("show current directory changed between calls: %q then %q", first, second)
	}

	writeFile(t, "sub/keep.txt", "")
	if got := h.output(t, "change directory to sub"); got != "Changed directory to sub" {
		t.Errorf("change directory = %q", got)
	}
	if got := h.output(t, "show current directory"); filepath.Base(got) != "sub" {
		t.Errorf("cwd after chdir = %q, want .../sub", got)
	}
	if got := h.output(t, "list files in current directory"); got != "keep.txt" {
		t.Errorf("list files = %q, want keep.txt", got)
	}
}

func TestDispatch_Counts(t *testing.T) {
	h := newHarness(t)
	writeFile(t, "notes.txt", "a b  c")

	tests := []struct {
		line string
		want string
	}{
		{"count words in notes.txt", "words: 3"},
		{"count lines in notes.txt", "lines: 1"},
		{"count chars in notes.txt", "chars: 6"},
	}
	for _, tt := range tests {
		if got := h.output(t, tt.line); got != tt.want {
			t.Errorf("%q = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestDispatch_Summarize(t *testing.T) {
	h := newHarness(t)
	writeFile(t, "long.txt", "one\n\ntwo\nthree\nfour\nfive\nsix\n")
	writeFile(t, "blank.txt", "\n  \n")

	if got, want := h.output(t, "summarize file long.txt"), "Summary:\none\ntwo\nthree\nfour\nfive"; got != want {
		t.Errorf("summarize = %q, want %q", got, want)
	}
	if got, want := h.output(t, "summarize file blank.txt"), "File is empty or contains no summary lines."; got != want {
		t.Errorf("summarize blank = %q, want %q", got, want)
	}
}

func TestDispatch_Search(t *testing.T) {
	h := newHarness(t)
	writeFile(t, "src/main.go", "package main\n")
	writeFile(t, "notes.txt", "buy milk\nTODO: write tests\n")

	if got := h.output(t, `search "TODO" in src`); got != "No matches found." {
		t.Errorf("search with no matches = %q", got)
	}
	if got, want := h.output(t, `search "TODO" in notes.txt`), "notes.txt:2: TODO: write tests"; got != want {
		t.Errorf("search = %q, want %q", got, want)
	}
	if got, want := h.output(t, `search "x" in missing`), "Target 'missing' not found"; got != want {
		t.Errorf("search missing = %q, want %q", got, want)
	}

	res := h.run(t, `search "(" in notes.txt`)
	if !taierrors.IsInvalidArgument(res.Err) {
		t.Errorf("search with bad regex = %+v, want invalid argument failure", res)
	}
}

func TestDispatch_Password(t *testing.T) {
	h := newHarness(t)

	if got := h.output(t, "generate password 0"); got != "" {
		t.Errorf("generate password 0 = %q, want empty", got)
	}

	got := h.output(t, "generate password 16")
	if !regexp.MustCompile(`^[A-Za-z0-9]{16}$`).MatchString(got) {
		t.Errorf("generate password 16 = %q, want 16 alphanumerics", got)
	}

	res := h.run(t, "generate password 5000")
	if !taierrors.IsInvalidArgument(res.Err) {
		t.Errorf("generate password 5000 = %+v, want invalid argument failure", res)
	}
}

func TestDispatch_Images(t *testing.T) {
	h := newHarness(t)

	if got, want := h.output(t, "resize image a.png to 100x50"), "Resized image saved to a.png_resized.png"; got != want {
		t.Errorf("resize = %q, want %q", got, want)
	}
	if len(h.images.resized) != 2 || h.images.resized[1] != "a.png_resized.png" {
		t.Errorf("resize destination = %v", h.images.resized)
	}

	if got, want := h.output(t, "convert image a.png to JPEG"), "Converted image saved to a.png.jpg"; got != want {
		t.Errorf("convert = %q, want %q", got, want)
	}
	if got, want := h.output(t, "convert image a.png to tiff"), "Unsupported format. Supported: png, jpg, bmp, gif."; got != want {
		t.Errorf("convert tiff = %q, want %q", got, want)
	}
	if len(h.images.converted) != 2 {
		t.Errorf("unsupported format reached the image capability: %v", h.images.converted)
	}

	if got, want := h.output(t, "plot a sine wave"), "Plot saved to sine_wave.png"; got != want {
		t.Errorf("plot = %q, want %q", got, want)
	}
}

func TestDispatch_Shell(t *testing.T) {
	h := newHarness(t)
	h.runner.out = procexec.Output{Stdout: "hi\n", Stderr: "warning\n", ExitCode: 1}

	if got, want := h.output(t, `run "echo hi"`), "hi\n\n[stderr]: warning\n"; got != want {
		t.Errorf("run = %q, want %q", got, want)
	}
	last := h.runner.specs[len(h.runner.specs)-1]
	if last.Program != "sh" || strings.Join(last.Args, " ") != "-c echo hi" {
		t.Errorf("run spec = %+v", last)
	}

	h.runner.out = procexec.Output{Stdout: "1\n", Stderr: "  "}
	if got := h.output(t, "run code python: print(1)"); got != "1\n" {
		t.Errorf("run code = %q", got)
	}
	last = h.runner.specs[len(h.runner.specs)-1]
	if last.Program != "python3" {
		t.Errorf("run code program = %q, want python3", last.Program)
	}

	if got, want := h.output(t, "run code ruby: puts 1"), "Unsupported language. Supported: python, javascript, bash."; got != want {
		t.Errorf("run code ruby = %q", got)
	}

	h.runner.err = errors.New("exec: \"sh\": executable file not found in $PATH")
	if res := h.run(t, `run "ls"`); res.Kind != ResultFailure {
		t.Errorf("run with start failure kind = %v, want failure", res.Kind)
	}
}

func TestDispatch_Alias(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{out: procexec.Output{Stdout: "clean\n"}}
	m := command.NewMatcher(command.AliasRule("show git status", "git status --short", ""))
	d := New(Capabilities{Runner: runner, Profile: procexec.ProfileFor("linux")}, Options{})

	p, ok := m.Match("Show Git Status")
	if !ok {
		t.Fatal("alias phrase did not match")
	}
	res := d.Dispatch(context.Background(), p)
	if res.Render() != "clean\n" {
		t.Errorf("alias output = %q", res.Render())
	}
	if got := runner.specs[0].Args; got[len(got)-1] != "git status --short" {
		t.Errorf("alias command = %v", got)
	}
}

func TestDispatch_Audio(t *testing.T) {
	h := newHarness(t)

	if got := h.output(t, "play audio song.wav"); got != "Audio played successfully." {
		t.Errorf("play audio = %q", got)
	}

	h.runner.out = procexec.Output{ExitCode: 1}
	res := h.run(t, "play audio song.wav")
	if !taierrors.IsExternalToolFailure(res.Err) {
		t.Fatalf("failed playback = %+v, want external tool failure", res)
	}
	if !strings.HasPrefix(res.Render(), "Error: Failed to play audio. (") {
		t.Errorf("Render() = %q", res.Render())
	}

	h.runner.out = procexec.Output{}
	if got, want := h.output(t, "convert audio song.wav to mp3"), "Converted audio saved to song.wav.mp3"; got != want {
		t.Errorf("convert audio = %q, want %q", got, want)
	}
	last := h.runner.specs[len(h.runner.specs)-1]
	if strings.Join(last.Args, " ") != "-y -i song.wav song.wav.mp3" {
		t.Errorf("convert audio args = %v", last.Args)
	}

	if got := h.output(t, `speak "hello there"`); got != "Spoken successfully." {
		t.Errorf("speak = %q", got)
	}
}

func TestDispatch_AudioUnsupportedPlatform(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	d := New(Capabilities{Runner: runner, Profile: procexec.ProfileFor("windows")}, Options{})

	tests := []struct {
		p    command.Parsed
		want string
	}{
		{command.Parsed{Action: command.ActionPlayAudio, Args: []string{"a.wav"}}, "Audio playback not supported on this OS."},
		{command.Parsed{Action: command.ActionSpeak, Args: []string{"hi"}}, "Text-to-speech not supported on this OS."},
	}
	for _, tt := range tests {
		if got := d.Dispatch(context.Background(), tt.p).Render(); got != tt.want {
			t.Errorf("%v = %q, want %q", tt.p.Action, got, tt.want)
		}
	}
	if len(runner.specs) != 0 {
		t.Errorf("unsupported audio ran %v", runner.specs)
	}
}

func TestDispatch_Schedule(t *testing.T) {
	h := newHarness(t)
	h.runner.out = procexec.Output{Stdout: "done"}

	if got, want := h.output(t, `schedule "backup" at 10:01`), "Scheduled command output:\ndone"; got != want {
		t.Errorf("schedule = %q, want %q", got, want)
	}
	if len(h.clock.slept) != 1 || h.clock.slept[0] != time.Minute {
		t.Errorf("slept = %v, want [1m0s]", h.clock.slept)
	}
	if want := "Scheduling command 'backup' to run in 60 seconds (at 10:01).\n"; h.progress.String() != want {
		t.Errorf("progress = %q, want %q", h.progress.String(), want)
	}

	res := h.run(t, `schedule "backup" at noon`)
	if !taierrors.IsInvalidArgument(res.Err) {
		t.Errorf("schedule at noon = %+v, want invalid argument failure", res)
	}
}

func TestDispatch_Watch(t *testing.T) {
	h := newHarness(t)
	h.watcher.events = []watch.Event{{Path: "notes.txt", Op: "WRITE"}}

	if got := h.output(t, "watch ."); got != "Stopped watching." {
		t.Errorf("watch = %q", got)
	}
	want := "Watching . for changes. Press Ctrl+C to stop.\n" +
		"Change detected: WRITE notes.txt\n" +
		"Watch error: queue overflow\n"
	if h.progress.String() != want {
		t.Errorf("progress = %q, want %q", h.progress.String(), want)
	}

	h.watcher.err = watch.ErrTargetNotFound
	if got, want := h.output(t, "watch nowhere"), "Target 'nowhere' not found"; got != want {
		t.Errorf("watch missing = %q, want %q", got, want)
	}
}

func TestDispatch_Network(t *testing.T) {
	h := newHarness(t)
	h.net.body = "London: +12°C\n"

	if got := h.output(t, "show weather in New York"); got != "London: +12°C\n" {
		t.Errorf("weather = %q", got)
	}
	if got, want := h.net.urls[0], "https://wttr.in/New+York?format=3"; got != want {
		t.Errorf("weather url = %q, want %q", got, want)
	}

	if got, want := h.output(t, "download https://example.com/a.bin to a.bin"), "Downloaded https://example.com/a.bin to a.bin"; got != want {
		t.Errorf("download = %q, want %q", got, want)
	}

	h.net.err = taierrors.NewNetworkErrorWithStatus("download", 404, "404 Not Found")
	if res := h.run(t, "download https://example.com/x to x"); !taierrors.IsNetworkFailure(res.Err) {
		t.Errorf("failed download = %+v, want network failure", res)
	}
}

func TestDispatch_Extract(t *testing.T) {
	h := newHarness(t)

	if got, want := h.output(t, "extract bundle.tgz to out"), "Extracted bundle.tgz to out"; got != want {
		t.Errorf("extract = %q, want %q", got, want)
	}
	if got := h.output(t, "extract bundle.rar to out"); got != unsupportedArchive {
		t.Errorf("extract rar = %q", got)
	}
	if h.extract.calls != 1 {
		t.Errorf("extractor called %d times, want 1", h.extract.calls)
	}
}

func TestDispatch_Diff(t *testing.T) {
	h := newHarness(t)
	writeFile(t, "a.txt", "one\ntwo\n")
	writeFile(t, "b.txt", "one\nthree\n")
	writeFile(t, "c.txt", "one\ntwo\n")

	got := h.output(t, "diff a.txt b.txt")
	for _, want := range []string{"--- a.txt", "+++ b.txt", "-two", "+three"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff output missing %q:\n%s", want, got)
		}
	}
	if got := h.output(t, "diff a.txt c.txt"); got != "No differences." {
		t.Errorf("identical diff = %q", got)
	}
}

func TestDispatch_BatchRename(t *testing.T) {
	h := newHarness(t)
	writeFile(t, "docs/1.txt", "")
	writeFile(t, "docs/notes.md", "")

	got := h.output(t, `rename files in docs matching "(\d+)\.txt" to "file_$1.txt"`)
	want := "Renamed files:\n1.txt -> " + filepath.Join("docs", "file_1.txt")
	if got != want {
		t.Errorf("rename = %q, want %q", got, want)
	}
	if got := h.output(t, `rename files in docs matching "zzz" to "y"`); got != "No files matched the pattern." {
		t.Errorf("rename with no matches = %q", got)
	}
}

func TestDispatch_SystemAndMisc(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		line string
		want string
	}{
		{"show system info", "OS: linux\nArch: amd64"},
		{"show date and time", "2024-03-05 10:00:00"},
		{`explain "ls -la"`, "[Explanation for shell command: 'ls -la']"},
		{`copy "snippet" to clipboard`, "Copied to clipboard."},
		{"paste from clipboard", "Clipboard: snippet"},
		{"show top processes", "Top processes:"},
	}
	for _, tt := range tests {
		if got := h.output(t, tt.line); got != tt.want {
			t.Errorf("%q = %q, want %q", tt.line, got, tt.want)
		}
	}

	if got := h.output(t, "show calendar"); !strings.HasPrefix(got, "     March 2024") {
		t.Errorf("calendar = %q", got)
	}

	helpText := h.output(t, "help")
	if !strings.HasPrefix(helpText, "Available commands:\n- list files in current directory\n") {
		t.Errorf("help = %q", helpText)
	}
	if !strings.Contains(helpText, `- run "<shell command>"`) {
		t.Errorf("help is missing the run usage:\n%s", helpText)
	}
}

func TestDispatch_TopProcesses(t *testing.T) {
	t.Parallel()

	procs := &fakeProcesses{procs: []sysinfo.ProcessInfo{
		{PID: 1, Name: "init", CPUPercent: 0.5, MemoryKB: 1024},
		{PID: 42, Name: "build", CPUPercent: 97.25, MemoryKB: 204800},
	}}
	d := New(Capabilities{Processes: procs}, Options{})

	got := d.Dispatch(context.Background(), command.Parsed{Action: command.ActionTopProcesses}).Render()
	want := "Top processes:\n" +
		"build (pid 42): 97.25% CPU, 204800 KB RAM\n" +
		"init (pid 1): 0.50% CPU, 1024 KB RAM"
	if got != want {
		t.Errorf("top processes = %q, want %q", got, want)
	}
}

func TestDispatch_NoMatch(t *testing.T) {
	h := newHarness(t)

	for _, line := range []string{"", "exit", "EXIT", "make me a sandwich", "explain shell-cmd"} {
		res := h.run(t, line)
		if res.Kind != ResultNoMatch {
			t.Errorf("%q kind = %v, want no match", line, res.Kind)
		}
		if res.Render() != "Unrecognized command." {
			t.Errorf("%q Render() = %q", line, res.Render())
		}
	}

	if res := h.disp.Dispatch(context.Background(), command.Parsed{}); res.Kind != ResultNoMatch {
		t.Errorf("Dispatch(ActionNone) kind = %v, want no match", res.Kind)
	}
}

func TestDispatch_RecoversPanics(t *testing.T) {
	t.Parallel()

	d := New(Capabilities{Calc: panickyEvaluator{}}, Options{})
	res := d.Dispatch(context.Background(), command.Parsed{Action: command.ActionCalculate, Args: []string{"1"}})
	if res.Kind != ResultFailure {
		t.Fatalf("kind = %v, want failure", res.Kind)
	}
	if got := res.Render(); got != "Error: internal error: boom" {
		t.Errorf("Render() = %q", got)
	}
}
