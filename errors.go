package feedback

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the failure modes of a tool call.
var (
	// ErrUnknownTool indicates the requested tool does not exist.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrValidation indicates the tool arguments failed validation.
	ErrValidation = errors.New("validation error")

	// ErrExecution indicates the collaborator process failed.
	ErrExecution = errors.New("execution error")

	// ErrTimeout indicates the collaborator process exceeded its time limit.
	ErrTimeout = errors.New("timeout")
)

// UnknownToolError is returned for calls naming a tool other than ToolName.
type UnknownToolError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// Is reports whether target is ErrUnknownTool.
func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }

// ValidationError identifies the argument that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

// Error returns "field: reason", or the reason alone when no field applies.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ExecutionError reports a collaborator run that did not exit cleanly.
// Message is the captured stderr, or stdout when stderr was empty.
// ExitCode is -1 when the process could not be started.
type ExecutionError struct {
	ExitCode int
	Message  string
	Err      error
}

// Error returns Message, falling back to the cause and then the exit status.
func (e *ExecutionError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("exit status %d", e.ExitCode)
	}
}

// Is reports whether target is ErrExecution.
func (e *ExecutionError) Is(target error) bool { return target == ErrExecution }

// Unwrap returns the cause of a run that could not be started.
func (e *ExecutionError) Unwrap() error { return e.Err }

// TimeoutError reports a collaborator run killed after exceeding Timeout.
type TimeoutError struct {
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("collaborator timed out after %s", e.Timeout)
}

// Is reports whether target is ErrTimeout.
func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
