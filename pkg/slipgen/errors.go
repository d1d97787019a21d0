package slipgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidRequest is returned when a Request fails its preconditions.
	// Nothing is written and no process is started.
	ErrInvalidRequest = errors.New("invalid slipgen request")

	// ErrShapeMismatch is wrapped by a DecodeError when the response table
	// does not hold exactly ln*wn rows.
	ErrShapeMismatch = errors.New("response row count does not match ln*wn")
)

// LaunchError reports that the external program could not be started
// (binary missing, exec permission denied, unusable working directory).
type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ComputationError reports that the external program ran and exited with a
// non-zero status. Stderr holds the captured error stream verbatim.
type ComputationError struct {
	ExitCode int
	Stderr   string
}

func (e *ComputationError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("slipgen exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("slipgen exited with status %d: %s", e.ExitCode, msg)
}

// DecodeError reports a missing or malformed response file. Line is the
// 1-based line of the offending row, or 0 when the error is not tied to one.
type DecodeError struct {
	Path string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	src := e.Path
	if src == "" {
		src = "response"
	}
	if e.Line > 0 {
		return fmt.Sprintf("decode %s:%d: %v", src, e.Line, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", src, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TimeoutError reports that the external program was killed after running
// longer than the configured timeout.
type TimeoutError struct {
	Timeout time.Duration
	Stderr  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("slipgen timed out after %s", e.Timeout)
}

// Unwrap lets callers match a timeout with context.DeadlineExceeded.
func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }
