package command

// Action identifies one behavior the shell can perform.
type Action int

const (
	ActionNone Action = iota
	ActionListFiles
	ActionCalculate
	ActionPlotSine
	ActionShowCwd
	ActionChangeDir
	ActionShowFile
	ActionWriteFile
	ActionDeleteFile
	ActionSystemInfo
	ActionDateTime
	ActionHelp
	ActionSearch
	ActionSummarize
	ActionCountLines
	ActionCountWords
	ActionCountChars
	ActionDiskUsage
	ActionTopProcesses
	ActionDownload
	ActionExtract
	ActionPassword
	ActionCalendar
	ActionWeather
	ActionExplain
	ActionRunCode
	ActionRunShell
	ActionDiff
	ActionBatchRename
	ActionResizeImage
	ActionConvertImage
	ActionPlayAudio
	ActionConvertAudio
	ActionSpeak
	ActionCopyClipboard
	ActionPasteClipboard
	ActionWatch
	ActionSchedule
	ActionAlias
)

var actionNames = map[Action]string{
	ActionNone:           "none",
	ActionListFiles:      "list-files",
	ActionCalculate:      "calculate",
	ActionPlotSine:       "plot-sine",
	ActionShowCwd:        "show-cwd",
	ActionChangeDir:      "change-dir",
	ActionShowFile:       "show-file",
	ActionWriteFile:      "write-file",
	ActionDeleteFile:     "delete-file",
	ActionSystemInfo:     "system-info",
	ActionDateTime:       "date-time",
	ActionHelp:           "help",
	ActionSearch:         "search",
	ActionSummarize:      "summarize",
	ActionCountLines:     "count-lines",
	ActionCountWords:     "count-words",
	ActionCountChars:     "count-chars",
	ActionDiskUsage:      "disk-usage",
	ActionTopProcesses:   "top-processes",
	ActionDownload:       "download",
	ActionExtract:        "extract",
	ActionPassword:       "password",
	ActionCalendar:       "calendar",
	ActionWeather:        "weather",
	ActionExplain:        "explain",
	ActionRunCode:        "run-code",
	ActionRunShell:       "run-shell",
	ActionDiff:           "diff",
	ActionBatchRename:    "batch-rename",
	ActionResizeImage:    "resize-image",
	ActionConvertImage:   "convert-image",
	ActionPlayAudio:      "play-audio",
	ActionConvertAudio:   "convert-audio",
	ActionSpeak:          "speak",
	ActionCopyClipboard:  "copy-clipboard",
	ActionPasteClipboard: "paste-clipboard",
	ActionWatch:          "watch",
	ActionSchedule:       "schedule",
	ActionAlias:          "alias",
}

// String returns the action's kebab-case name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Parsed is the result of a successful match: the action plus the arguments
// extracted from the input line. Numeric arguments are already validated.
type Parsed struct {
	Action  Action
	Args    []string
	Numbers []int
}

// Arg returns the i-th string argument or "" when absent.
func (p Parsed) Arg(i int) string {
	if i < 0 || i >= len(p.Args) {
		return ""
	}
	return p.Args[i]
}

// Number returns the i-th numeric argument or 0 when absent.
func (p Parsed) Number(i int) int {
	if i < 0 || i >= len(p.Numbers) {
		return 0
	}
	return p.Numbers[i]
}
