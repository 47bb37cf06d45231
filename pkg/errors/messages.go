package errors

import (
	"fmt"
	"os/exec"
	"strings"
)

// FormatUserError returns the user-facing description of err, without the
// "Error: " framing the shell adds. Missing external programs get a short
// hint on a second line.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var actionErr *ActionError
	if !As(err, &actionErr) {
		return err.Error()
	}

	switch actionErr.Kind {
	case KindExternalToolFailure:
		return formatExternalToolError(actionErr)
	default:
		return actionErr.Error()
	}
}

// formatExternalToolError adds an install hint when the program was not found.
func formatExternalToolError(err *ActionError) string {
	var b strings.Builder
	b.WriteString(err.Error())

	var execErr *exec.Error
	if As(err.Cause, &execErr) && Is(execErr.Err, exec.ErrNotFound) {
		fmt.Fprintf(&b, "\n  • Ensure %q is installed and on your PATH", execErr.Name)
	}

	return b.String()
}
