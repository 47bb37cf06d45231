package procexec

import (
	"strings"

	"thoreinstein.com/tai/pkg/config"
)

// Profile is the set of programs the shell uses on one platform. It is
// chosen once at startup. An empty AudioPlayer or Speech means the platform
// has no such capability.
type Profile struct {
	OS             string
	Shell          string
	ShellArgs      []string
	AudioPlayer    string
	AudioConverter string
	Speech         string
	Python         string
	JavaScript     string
	Bash           string
}

// ProfileFor returns the default profile for a GOOS value.
func ProfileFor(goos string) Profile {
	p := Profile{
		OS:             goos,
		Shell:          "sh",
		ShellArgs:      []string{"-c"},
		AudioConverter: "ffmpeg",
		Python:         "python3",
		JavaScript:     "node",
		Bash:           "bash",
	}

	switch goos {
	case "windows":
		p.Shell = "cmd"
		p.ShellArgs = []string{"/C"}
	case "darwin":
		p.AudioPlayer = "afplay"
		p.Speech = "say"
	case "linux":
		p.AudioPlayer = "aplay"
		p.Speech = "espeak"
	}

	return p
}

// NewProfile returns the profile for goos with non-empty configuration
// values taking precedence over the platform defaults.
func NewProfile(goos string, cfg *config.Config) Profile {
	p := ProfileFor(goos)
	if cfg == nil {
		return p
	}

	if cfg.Shell.Program != "" {
		p.Shell = cfg.Shell.Program
		p.ShellArgs = append([]string(nil), cfg.Shell.Args...)
	}
	override(&p.AudioPlayer, cfg.Audio.Player)
	override(&p.AudioConverter, cfg.Audio.Converter)
	override(&p.Speech, cfg.Speech.Engine)
	override(&p.Python, cfg.Interpreters.Python)
	override(&p.JavaScript, cfg.Interpreters.JavaScript)
	override(&p.Bash, cfg.Interpreters.Bash)

	return p
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// ShellCommand returns the invocation that runs command through the shell.
func (p Profile) ShellCommand(command string) Spec {
	args := append(append([]string(nil), p.ShellArgs...), command)
	return Spec{Program: p.Shell, Args: args}
}

// Snippet returns the invocation that runs code in the interpreter for lang.
// Python and JavaScript receive the code as an argument; bash reads it from
// standard input. The second result is false for unsupported languages.
func (p Profile) Snippet(lang, code string) (Spec, bool) {
	switch strings.ToLower(lang) {
	case "python":
		return Spec{Program: p.Python, Args: []string{"-c", code}}, true
	case "javascript", "js", "node":
		return Spec{Program: p.JavaScript, Args: []string{"-e", code}}, true
	case "bash", "sh":
		return Spec{Program: p.Bash, Stdin: code}, true
	default:
		return Spec{}, false
	}
}

// PlayAudio returns the invocation that plays file, or false when the
// platform has no audio player.
func (p Profile) PlayAudio(file string) (Spec, bool) {
	if p.AudioPlayer == "" {
		return Spec{}, false
	}
	return Spec{Program: p.AudioPlayer, Args: []string{file}}, true
}

// ConvertAudio returns the invocation that transcodes src into dst,
// overwriting dst.
func (p Profile) ConvertAudio(src, dst string) Spec {
	return Spec{Program: p.AudioConverter, Args: []string{"-y", "-i", src, dst}}
}

// Speak returns the invocation that speaks text aloud, or false when the
// platform has no speech engine.
func (p Profile) Speak(text string) (Spec, bool) {
	if p.Speech == "" {
		return Spec{}, false
	}
	return Spec{Program: p.Speech, Args: []string{text}}, true
}
