// Package engineerr defines the error-kind taxonomy from spec.md §7 so
// the top-level entry point, not each stage, decides exit code and
// scratch retention.
package engineerr

import "fmt"

// Kind classifies why a stage failed.
type Kind int

const (
	// InputMissing means a required artifact was not found on disk.
	InputMissing Kind = iota
	// InputMalformed means an artifact failed to parse (XML error,
	// missing attribute, ...).
	InputMalformed
	// ExternalToolFailure means a child process (font-metric tool,
	// encoder) exited nonzero.
	ExternalToolFailure
	// OutputFailure means a write or rename to the filesystem failed.
	OutputFailure
)

func (k Kind) String() string {
	switch k {
	case InputMissing:
		return "input missing"
	case InputMalformed:
		return "input malformed"
	case ExternalToolFailure:
		return "external tool failure"
	case OutputFailure:
		return "output failure"
	default:
		return "unknown"
	}
}

// Error is the single error type every stage returns; main decides what
// to do with it (spec.md §9: "a result type that propagates to the
// top-level entry, which decides exit code and scratch retention").
type Error struct {
	Kind   Kind
	Stage  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Stage, e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error.
func New(kind Kind, stage, reason string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Reason: reason, Err: err}
}
