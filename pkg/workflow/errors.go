package workflow

import (
	"errors"
	"fmt"
)

// ErrUnknownStepKind indicates a step kind with no registered factory.
var ErrUnknownStepKind = errors.New("unknown step kind")

// StepError wraps a failure inside one workflow step, carrying the step id
// so callers can attribute the fault.
type StepError struct {
	StepID   string
	StepName string
	Err      error
}

func (e *StepError) Error() string {
	name := e.StepName
	if name == "" {
		name = e.StepID
	}

	return fmt.Sprintf("step %s failed: %v", name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// IsStepError reports whether err carries a step failure.
func IsStepError(err error) bool {
	var target *StepError

	return errors.As(err, &target)
}
