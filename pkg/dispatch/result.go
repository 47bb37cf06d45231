package dispatch

import (
	taierrors "thoreinstein.com/tai/pkg/errors"
)

// ResultKind tags a Result.
type ResultKind int

const (
	// ResultOutput is a successful action, including soft errors such as
	// "No matches found.".
	ResultOutput ResultKind = iota
	// ResultFailure is an action that failed; Err holds the cause.
	ResultFailure
	// ResultNoMatch means no rule recognized the input.
	ResultNoMatch
)

// unrecognized is printed when no rule matches.
const unrecognized = "Unrecognized command."

// Result is the normalized outcome of one input line.
type Result struct {
	Kind ResultKind
	Text string
	Err  error
}

// Output creates a successful result.
func Output(text string) Result {
	return Result{Kind: ResultOutput, Text: text}
}

// Failure creates a failed result.
func Failure(err error) Result {
	return Result{Kind: ResultFailure, Err: err}
}

// NoMatch creates a result for unrecognized input.
func NoMatch() Result {
	return Result{Kind: ResultNoMatch}
}

// Render returns the text the shell prints for r.
func (r Result) Render() string {
	switch r.Kind {
	case ResultFailure:
		return "Error: " + taierrors.FormatUserError(r.Err)
	case ResultNoMatch:
		return unrecognized
	default:
		return r.Text
	}
}
