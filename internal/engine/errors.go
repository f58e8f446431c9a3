package engine

import (
	"fmt"
	"strings"
)

// ExecutionError is an engine run that failed without crashing.
type ExecutionError struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	cmd := strings.Join(e.Command, " ")
	if e.Err != nil {
		return fmt.Sprintf("engine %q failed (exit code %d): %v", cmd, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("engine %q failed (exit code %d)", cmd, e.ExitCode)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when the engine exceeds its configured timeout.
type TimeoutError struct {
	Command []string
	Timeout string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("engine %q timed out after %s", strings.Join(e.Command, " "), e.Timeout)
}
