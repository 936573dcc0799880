package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (unknown document, bad input, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested document or setting was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates settings validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrNotSelectable indicates a document cannot become the active configuration.
	ErrNotSelectable = crdb.New("configuration is not selectable")
)

// Helpers re-exported from github.com/cockroachdb/errors so callers only
// need a single errors import.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Join   = crdb.Join
	Unwrap = crdb.Unwrap
)

// ExitError carries the process exit code for err, plus a hint printed
// below the error message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError wraps err with code and no suggestion.
func NewExitError(err error, code int) *ExitError {
	return exitWith(err, code, "")
}

// NewUserError wraps err as a user mistake.
func NewUserError(err error, suggestion string) *ExitError {
	return exitWith(err, ExitUser, suggestion)
}

// NewSystemError wraps err as an environment failure.
func NewSystemError(err error, suggestion string) *ExitError {
	return exitWith(err, ExitSystem, suggestion)
}

// NewConfigError wraps a settings failure and points the user at the
// current values.
func NewConfigError(err error) *ExitError {
	return exitWith(err, ExitUser, "Run: hsv settings list")
}

func exitWith(err error, code int, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: code, Suggestion: suggestion}
}

// Error returns the wrapped message. Without one it falls back to the
// suggestion, then to the exit code.
func (e *ExitError) Error() string {
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.Suggestion != "":
		return e.Suggestion
	default:
		return fmt.Sprintf("exit code %d", e.Code)
	}
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code: ExitSuccess for nil, the
// code of the first ExitError in the chain, otherwise ExitUser.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if crdb.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUser
}
