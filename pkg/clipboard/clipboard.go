// Package clipboard reads and writes the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"

	taierrors "thoreinstein.com/tai/pkg/errors"
)

// Package-level hooks so tests can replace the system clipboard.
var (
	readAll     = clipboard.ReadAll
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System is the desktop clipboard. On Linux it relies on xclip, xsel or
// wl-clipboard being installed, so failures are reported as external tool
// failures.
type System struct{}

// New creates a System clipboard.
func New() *System {
	return &System{}
}

// Read returns the clipboard's text content.
func (System) Read() (string, error) {
	if unsupported() {
		return "", errUnsupported("paste-clipboard")
	}
	text, err := readAll()
	if err != nil {
		return "", taierrors.NewExternalToolError("paste-clipboard", "failed to read clipboard", err)
	}
	return text, nil
}

// Write replaces the clipboard's content with text.
func (System) Write(text string) error {
	if unsupported() {
		return errUnsupported("copy-clipboard")
	}
	if err := writeAll(text); err != nil {
		return taierrors.NewExternalToolError("copy-clipboard", "failed to write clipboard", err)
	}
	return nil
}

func errUnsupported(action string) error {
	return taierrors.NewExternalToolError(action,
		"clipboard unavailable: install xclip, xsel or wl-clipboard", nil)
}
