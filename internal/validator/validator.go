package validator

import (
	"fmt"
	"maps"
)

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError indicates a blocking validation failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is one problem found in a document. It implements error, and
// errors.Is matches the sentinel it was created with.
type Issue struct {
	Severity Severity          `json:"severity"`
	Field    string            `json:"field,omitempty"`
	Message  string            `json:"message"`
	Value    any               `json:"value,omitempty"`
	Context  map[string]string `json:"context,omitempty"`

	cause error
}

// NewError returns an error-severity issue whose errors.Is identity is cause.
func NewError(cause error, field, message string, value any) *Issue {
	return &Issue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
		Value:    value,
		cause:    cause,
	}
}

// With returns a copy of the issue with key=value added to its context.
func (i Issue) With(key, value string) *Issue {
	ctx := make(map[string]string, len(i.Context)+1)
	maps.Copy(ctx, i.Context)
	ctx[key] = value
	i.Context = ctx
	return &i
}

// Error renders `severity: field "f": message (got v)`, omitting the
// field and value parts when unset.
func (i Issue) Error() string {
	msg := i.Message
	if i.Field != "" {
		msg = fmt.Sprintf("field %q: %s", i.Field, msg)
	}
	if i.Value != nil {
		msg = fmt.Sprintf("%s (got %v)", msg, i.Value)
	}
	return i.Severity.String() + ": " + msg
}

// Unwrap returns the sentinel the issue was created with, if any.
func (i Issue) Unwrap() error {
	return i.cause
}

// Result aggregates validation issues in the order they were found.
type Result struct {
	Issues []Issue
}

// Add appends an existing issue to the result.
func (r *Result) Add(i Issue) {
	r.Issues = append(r.Issues, i)
}

// AddError records a blocking issue.
func (r *Result) AddError(field, message string, value any) {
	r.add(SeverityError, field, message, value)
}

// AddWarning records a non-blocking issue.
func (r *Result) AddWarning(field, message string, value any) {
	r.add(SeverityWarning, field, message, value)
}

// AddInfo records a note, such as a pending migration step.
func (r *Result) AddInfo(field, message string, value any) {
	r.add(SeverityInfo, field, message, value)
}

func (r *Result) add(s Severity, field, message string, value any) {
	r.Add(Issue{Severity: s, Field: field, Message: message, Value: value})
}

// HasErrors reports whether the document is unusable.
func (r *Result) HasErrors() bool { return r.count(SeverityError) > 0 }

// HasWarnings reports whether any warning was recorded.
func (r *Result) HasWarnings() bool { return r.count(SeverityWarning) > 0 }

func (r *Result) Errors() []Issue   { return r.filter(SeverityError) }
func (r *Result) Warnings() []Issue { return r.filter(SeverityWarning) }
func (r *Result) Infos() []Issue    { return r.filter(SeverityInfo) }

func (r *Result) count(s Severity) int {
	return len(r.filter(s))
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			res = append(res, i)
		}
	}
	return res
}
