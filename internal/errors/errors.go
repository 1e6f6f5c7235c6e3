// Package errors defines the engine's structured error kinds and maps them,
// together with repo/infra errors, onto gRPC status errors.
package errors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind is the machine-checkable category of an engine error.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidArgument
	KindPartialMaterialization
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindPartialMaterialization:
		return "partial_materialization"
	default:
		return "internal"
	}
}

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind: errors.Is(err, &Error{Kind: KindNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

// NotFound reports a missing entity, or one outside the caller's scope.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidArgument reports a request the engine refuses to act on.
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// Partial reports a schedule whose meal items are not all visible.
func Partial(scheduleID uint64, want, got int) error {
	return &Error{
		Kind: KindPartialMaterialization,
		Msg:  fmt.Sprintf("schedule %d has %d of %d meal items", scheduleID, got, want),
	}
}

// KindOf returns the kind of err. gorm.ErrRecordNotFound counts as NotFound.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	return KindInternal
}

// IsNotFound is shorthand for KindOf(err) == KindNotFound.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}
