package expr

import "fmt"

// Error reports a malformed or over-budget expression.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "expression error: " + e.Message
}

func expressionError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
