package models

// ErrorKind tells the HTTP layer which class of failure a model function hit.
// The taxonomy is deliberately small: missing resources, ownership violations,
// operations on resources in the wrong lifecycle state, and write conflicts
// (reserved, nothing raises it yet).
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindForbidden
	KindInvalidState
	KindConflict
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf returns the ErrorKind of err, or ok=false for plain errors (DB
// failures and the like, which handlers report as internal errors).
func KindOf(err error) (ErrorKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return 0, false
}
