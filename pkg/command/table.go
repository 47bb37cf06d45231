package command

// builtinRules is the ordered rule table. Order is significant: rules are
// tried top to bottom and the first match wins, so a rule whose prefix
// extends another's ("run code " vs "run ") must come first.
var builtinRules = []Rule{
	{Action: ActionListFiles, Kind: KindExact, Prefix: "list files in current directory",
		Usage: "list files in current directory"},
	{Action: ActionCalculate, Kind: KindRest, Prefix: "calculate ",
		Usage: "calculate <expression>"},
	{Action: ActionPlotSine, Kind: KindExact, Prefix: "plot a sine wave",
		Usage: "plot a sine wave"},
	{Action: ActionShowCwd, Kind: KindExact, Prefix: "show current directory",
		Usage: "show current directory"},
	{Action: ActionChangeDir, Kind: KindRest, Prefix: "change directory to ",
		Usage: "change directory to <path>"},
	{Action: ActionShowFile, Kind: KindRest, Prefix: "show file ",
		Usage: "show file <filename>"},
	{Action: ActionWriteFile, Kind: KindSplit, Prefix: "write to file ", Separator: ":",
		Usage: "write to file <filename>: <content>"},
	{Action: ActionDeleteFile, Kind: KindRest, Prefix: "delete file ",
		Usage: "delete file <filename>"},
	{Action: ActionSystemInfo, Kind: KindExact, Prefix: "show system info",
		Usage: "show system info"},
	{Action: ActionDateTime, Kind: KindExact, Prefix: "show date and time",
		Usage: "show date and time"},
	{Action: ActionHelp, Kind: KindExact, Prefix: "help",
		Usage: "help"},
	{Action: ActionSearch, Kind: KindQuotedLead, Prefix: "search ", Separator: "in ",
		Usage: `search "<regex>" in <file or directory>`},
	{Action: ActionSummarize, Kind: KindRest, Prefix: "summarize file ",
		Usage: "summarize file <filename>"},
	{Action: ActionCountLines, Kind: KindRest, Prefix: "count lines in ",
		Usage: "count lines in <filename>"},
	{Action: ActionCountWords, Kind: KindRest, Prefix: "count words in ",
		Usage: "count words in <filename>"},
	{Action: ActionCountChars, Kind: KindRest, Prefix: "count chars in ",
		Usage: "count chars in <filename>"},
	{Action: ActionDiskUsage, Kind: KindExact, Prefix: "show disk usage",
		Usage: "show disk usage"},
	{Action: ActionTopProcesses, Kind: KindExact, Prefix: "show top processes",
		Usage: "show top processes"},
	{Action: ActionDownload, Kind: KindSplit, Prefix: "download ", Separator: " to ",
		Usage: "download <url> to <filename>"},
	{Action: ActionExtract, Kind: KindSplit, Prefix: "extract ", Separator: " to ",
		Usage: "extract <archive.zip|.tar.gz|.tar.zst|.tar.lz4> to <directory>"},
	{Action: ActionPassword, Kind: KindRest, Prefix: "generate password ",
		Usage: "generate password <length>", parse: parseLength},
	{Action: ActionCalendar, Kind: KindExact, Prefix: "show calendar",
		Usage: "show calendar"},
	{Action: ActionWeather, Kind: KindRest, Prefix: "show weather in ",
		Usage: "show weather in <city>"},
	{Action: ActionExplain, Kind: KindQuoted, Prefix: "explain ",
		Usage: `explain "<shell command>"`},
	{Action: ActionRunCode, Kind: KindSplit, Prefix: "run code ", Separator: ":",
		Usage: "run code <python|javascript|bash>: <code>"},
	{Action: ActionRunShell, Kind: KindQuoted, Prefix: "run ",
		Usage: `run "<shell command>"`},
	{Action: ActionDiff, Kind: KindFields, Prefix: "diff ",
		Usage: "diff <file1> <file2>"},
	{Action: ActionBatchRename, Kind: KindCompound, Prefix: "rename files in ", Separator: " to ", Second: " matching ",
		Usage: `rename files in <directory> matching "<regex>" to "<replacement>"`},
	{Action: ActionResizeImage, Kind: KindSplit, Prefix: "resize image ", Separator: " to ",
		Usage: "resize image <file> to <width>x<height>", parse: parseDimensions},
	{Action: ActionConvertImage, Kind: KindSplit, Prefix: "convert image ", Separator: " to ",
		Usage: "convert image <file> to <png|jpg|bmp|gif>"},
	{Action: ActionPlayAudio, Kind: KindRest, Prefix: "play audio ",
		Usage: "play audio <file>"},
	{Action: ActionConvertAudio, Kind: KindSplit, Prefix: "convert audio ", Separator: " to ",
		Usage: "convert audio <file> to <format>"},
	{Action: ActionSpeak, Kind: KindQuoted, Prefix: "speak ",
		Usage: `speak "<text>"`},
	{Action: ActionCopyClipboard, Kind: KindQuotedSplit, Prefix: "copy ", Separator: " to clipboard",
		Usage: `copy "<text>" to clipboard`},
	{Action: ActionPasteClipboard, Kind: KindExact, Prefix: "paste from clipboard",
		Usage: "paste from clipboard"},
	{Action: ActionWatch, Kind: KindRest, Prefix: "watch ",
		Usage: "watch <file or directory>"},
	{Action: ActionSchedule, Kind: KindQuotedPair, Prefix: "schedule ", Separator: " at ",
		Usage: `schedule "<shell command>" at <HH:MM>`},
}

// BuiltinRules returns a copy of the built-in rule table in match order.
func BuiltinRules() []Rule {
	rules := make([]Rule, len(builtinRules))
	copy(rules, builtinRules)
	return rules
}

// AliasRule builds an exact-phrase rule that runs command in the shell.
func AliasRule(phrase, command, description string) Rule {
	usage := phrase
	if description != "" {
		usage = phrase + "  (" + description + ")"
	}
	return Rule{
		Action:  ActionAlias,
		Kind:    KindExact,
		Prefix:  phrase,
		Command: command,
		Usage:   usage,
	}
}
