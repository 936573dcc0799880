package doctor

import (
	"context"
	"time"
)

// Check is one diagnostic. Name is unique within a Runner; Category
// groups related checks in the output.
type Check interface {
	Name() string
	Category() string
	Run(ctx context.Context) *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
}

// NewRunner creates a runner with the given checks.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: append([]Check(nil), checks...)}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in run order.
func (r *Runner) Checks() []Check {
	return append([]Check(nil), r.checks...)
}

// Run executes all registered checks in order and returns a report.
// Checks not yet started when ctx is canceled are skipped.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		if ctx.Err() != nil {
			break
		}
		report.add(check.Run(ctx))
	}
	return report
}

// Report is the outcome of one Runner.Run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

func (r *Report) add(result *CheckResult) {
	r.Results = append(r.Results, result)
	r.Summary.count(result.Status)
}

func (r *Report) HasErrors() bool   { return r.Summary.Errors > 0 }
func (r *Report) HasWarnings() bool { return r.Summary.Warnings > 0 }
