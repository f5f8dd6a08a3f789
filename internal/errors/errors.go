// Package errors classifies the failures that end a gitlogue run.
// Every kind is terminal for the run; the top-level command prints it and exits non-zero.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the class of failure.
type Kind int

const (
	Unknown Kind = iota
	NotARepository
	InvalidArgument
	CommitFetchFailure
	NetworkFailure
	EmptyResponse
	MissingCredential
	Configuration
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case NotARepository:
		return "Not a Repository"
	case InvalidArgument:
		return "Invalid Argument"
	case CommitFetchFailure:
		return "Commit Fetch Failure"
	case NetworkFailure:
		return "Network Failure"
	case EmptyResponse:
		return "Empty Response"
	case MissingCredential:
		return "Missing Credential"
	case Configuration:
		return "Configuration Error"
	default:
		return "Error"
	}
}

// Error is a classified failure with optional usage and remediation hints.
type Error struct {
	Kind        Kind
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string, remediation ...string) *Error {
	return &Error{Kind: kind, Message: message, Remediation: remediation}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(err error, kind Kind, message string, remediation ...string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err, Remediation: remediation}
}

// NewArgumentError creates an InvalidArgument error carrying the correct usage.
func NewArgumentError(message, usage string) *Error {
	return &Error{Kind: InvalidArgument, Message: message, Usage: usage}
}

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As finds the first classified error in the chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrors.As(err, &e)
	return e, ok
}
