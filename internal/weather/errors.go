package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies resolution failures.
type ErrorKind string

const (
	KindUnknown           ErrorKind = "unknown"
	KindLocationNotFound  ErrorKind = "location_not_found"
	KindCollaboratorFault ErrorKind = "collaborator_fault"
	// KindSuperseded marks a result that lost the race to a newer fetch.
	// It is bookkeeping only and never recorded in state.
	KindSuperseded ErrorKind = "superseded"
)

// ErrLocationNotFound is matched by errors.Is for every KindLocationNotFound error.
var ErrLocationNotFound = errors.New("location not found")

// Error is a resolution failure with a Kind.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLocationNotFound) succeed for not-found errors
// that carry a different underlying cause.
func (e *Error) Is(target error) bool {
	return target == ErrLocationNotFound && e.Kind == KindLocationNotFound
}

func notFound(op, location string) *Error {
	return &Error{
		Kind:    KindLocationNotFound,
		Op:      op,
		Message: fmt.Sprintf("no place matches %q", location),
		Err:     ErrLocationNotFound,
	}
}

func fault(op, message string, err error) *Error {
	return &Error{Kind: KindCollaboratorFault, Op: op, Message: message, Err: err}
}

// KindOf extracts the kind from err. Errors that were not produced by this
// package are treated as collaborator faults.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindCollaboratorFault
}

// IsKind reports whether err is of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func errorInfo(err error) *ErrorInfo {
	return &ErrorInfo{Kind: KindOf(err), Message: err.Error()}
}
