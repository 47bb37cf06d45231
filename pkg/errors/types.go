// Package errors provides typed errors for the tai shell.
//
// Every capability failure that reaches the dispatcher is turned into an
// ActionError carrying one of a small set of failure kinds. All error types
// implement the standard error interface and support errors.Is() and
// errors.As() from the standard library and cockroachdb/errors.
package errors

import (
	"fmt"
	"io/fs"
	"net/url"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind classifies an action failure.
type Kind int

const (
	// KindIOFailure covers read/write/permission errors. It is the zero value
	// so that unclassified errors land here.
	KindIOFailure Kind = iota
	// KindInvalidArgument is user input that passed the matcher but failed
	// semantic validation (bad regular expression, bad time of day).
	KindInvalidArgument
	// KindNotFound is a missing file, directory or process.
	KindNotFound
	// KindExternalToolFailure is a spawned program that could not start or
	// exited unsuccessfully.
	KindExternalToolFailure
	// KindNetworkFailure is an unreachable host or a non-2xx response.
	KindNetworkFailure
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindExternalToolFailure:
		return "external tool failure"
	case KindNetworkFailure:
		return "network failure"
	default:
		return "io failure"
	}
}

// ActionError represents the failure of a single shell action.
type ActionError struct {
	Kind    Kind
	Action  string // e.g., "show-file", "download"
	Message string
	Cause   error

	// StatusCode is the HTTP status of an unsuccessful response, or 0.
	StatusCode int
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		// Sentence messages carry the cause in parentheses.
		if strings.HasSuffix(e.Message, ".") {
			return fmt.Sprintf("%s (%v)", e.Message, e.Cause)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ActionError) Unwrap() error {
	return e.Cause
}

// NewInvalidArgumentError creates a new ActionError of kind KindInvalidArgument.
func NewInvalidArgumentError(action, message string, cause error) *ActionError {
	return &ActionError{Kind: KindInvalidArgument, Action: action, Message: message, Cause: cause}
}

// NewNotFoundError creates a new ActionError of kind KindNotFound.
func NewNotFoundError(action, message string, cause error) *ActionError {
	return &ActionError{Kind: KindNotFound, Action: action, Message: message, Cause: cause}
}

// NewIOError creates a new ActionError of kind KindIOFailure.
func NewIOError(action, message string, cause error) *ActionError {
	return &ActionError{Kind: KindIOFailure, Action: action, Message: message, Cause: cause}
}

// NewExternalToolError creates a new ActionError of kind KindExternalToolFailure.
func NewExternalToolError(action, message string, cause error) *ActionError {
	return &ActionError{Kind: KindExternalToolFailure, Action: action, Message: message, Cause: cause}
}

// NewNetworkError creates a new ActionError of kind KindNetworkFailure.
func NewNetworkError(action, message string, cause error) *ActionError {
	return &ActionError{Kind: KindNetworkFailure, Action: action, Message: message, Cause: cause}
}

// NewNetworkErrorWithStatus creates a KindNetworkFailure error for an
// unsuccessful HTTP response.
func NewNetworkErrorWithStatus(action string, statusCode int, status string) *ActionError {
	return &ActionError{
		Kind:       KindNetworkFailure,
		Action:     action,
		Message:    fmt.Sprintf("request failed (HTTP %d): %s", statusCode, status),
		StatusCode: statusCode,
	}
}

// Classify turns an arbitrary capability error into an ActionError for the
// given action. Errors that already carry an ActionError are returned as is.
func Classify(action string, err error) *ActionError {
	if err == nil {
		return nil
	}

	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr
	}

	var urlErr *url.Error
	var execErr *exec.Error
	var exitErr *exec.ExitError

	switch {
	case errors.As(err, &execErr), errors.As(err, &exitErr):
		return &ActionError{Kind: KindExternalToolFailure, Action: action, Cause: err}
	case errors.As(err, &urlErr):
		return &ActionError{Kind: KindNetworkFailure, Action: action, Cause: err}
	case errors.Is(err, fs.ErrNotExist):
		return &ActionError{Kind: KindNotFound, Action: action, Cause: err}
	default:
		return &ActionError{Kind: KindIOFailure, Action: action, Cause: err}
	}
}

// KindOf reports the failure kind of err, classifying it when needed.
func KindOf(err error) Kind {
	if err == nil {
		return KindIOFailure
	}
	return Classify("", err).Kind
}

// IsInvalidArgument checks if an error or any error in its chain is an
// invalid-argument ActionError.
func IsInvalidArgument(err error) bool {
	return hasKind(err, KindInvalidArgument)
}

// IsNotFound checks if an error or any error in its chain is a not-found
// ActionError.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsExternalToolFailure checks if an error or any error in its chain is an
// external-tool ActionError.
func IsExternalToolFailure(err error) bool {
	return hasKind(err, KindExternalToolFailure)
}

// IsNetworkFailure checks if an error or any error in its chain is a network
// ActionError.
func IsNetworkFailure(err error) bool {
	return hasKind(err, KindNetworkFailure)
}

func hasKind(err error, kind Kind) bool {
	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		return false
	}
	return actionErr.Kind == kind
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use taierrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As
)
