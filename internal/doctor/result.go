// Package doctor diagnoses the hsv settings, the configuration directory
// and the documents in it.
package doctor

// Severity orders check outcomes from healthy to broken.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

var severityNames = [...]string{
	SeverityPass:    "pass",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is what one check found. Details keys are check specific.
type CheckResult struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Status   Severity       `json:"status"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`

	// Fixable is set when hsv doctor --fix can repair the problem.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results by status.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) count(status Severity) {
	counters := [...]*int{
		SeverityPass:    &s.Passed,
		SeverityInfo:    &s.Info,
		SeverityWarning: &s.Warnings,
		SeverityError:   &s.Errors,
	}
	if status >= 0 && int(status) < len(counters) {
		*counters[status]++
	}
}
