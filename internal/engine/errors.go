package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/PaulBabatuyi/skillSwap-gRPC/internal/data"
)

// Error kinds. Every error returned by the engine matches exactly one of
// them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependency failure")
)

// ErrAggregateStale is wrapped by the dependency error SubmitRating returns
// when the rating was stored but the rated user's aggregate was not
// updated. RecomputeUserRating repairs it.
var ErrAggregateStale = errors.New("aggregate rating not updated")

// Error carries the kind, the failing operation and enough detail for the
// caller to tell which rule rejected the request.
type Error struct {
	Kind error
	Op   string
	Msg  string
	// Status is the session status a conflict was decided on, if any.
	Status data.SessionStatus
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return e.Op + ": " + msg
}

// Is matches the error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func validationf(op, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func notFound(op, what string) error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: what + " not found"}
}

func permission(op, msg string) error {
	return &Error{Kind: ErrPermission, Op: op, Msg: msg}
}

func conflict(op, msg string, st data.SessionStatus) error {
	return &Error{Kind: ErrConflict, Op: op, Msg: msg, Status: st}
}

func dependency(op string, err error) error {
	return &Error{Kind: ErrDependency, Op: op, Msg: "store unavailable", Err: err}
}

// storeErr classifies an error from a store call. what names the record
// looked up, used for not-found messages.
func storeErr(op, what string, err error) error {
	switch {
	case errors.Is(err, data.ErrNotFound):
		return notFound(op, what)
	case errors.Is(err, data.ErrDuplicate):
		return &Error{Kind: ErrConflict, Op: op, Msg: what + " already exists", Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: ErrDependency, Op: op, Msg: "request cancelled", Err: err}
	default:
		return dependency(op, err)
	}
}
