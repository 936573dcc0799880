// Package errors provides error handling conventions for the hsv CLI.
//
// It wraps [github.com/cockroachdb/errors] so the rest of the module imports
// a single errors package, and adds sentinel errors, an ExitError type for
// CLI exit code handling, and exit code constants following standard Unix
// conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotSelectable) {
//	    // the document is listed but cannot be activated
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (unknown document, invalid input)
//   - ExitSystem (2): System-related error (I/O, permissions)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrNotFound, "Run: hsv list")
//	os.Exit(errors.ExitCode(err))
package errors
