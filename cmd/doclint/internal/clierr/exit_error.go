package clierr

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitLintFailed = 1
	ExitUsage      = 2
	ExitFatal      = 3
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError carries an explicit process exit code and unwraps to its cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Newf is a formatted variant of New.
func Newf(code int, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches an exit code to cause. A nil cause yields a plain New.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts an exit code from any error. Errors without a code
// are treated as fatal.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitFatal
}

func normalize(code int) int {
	if code <= 0 {
		return ExitFatal
	}
	return code
}
