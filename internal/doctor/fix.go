package doctor

// Fixer is implemented by checks that can repair what they find.
// CanFix and Fix are only meaningful after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult describes the outcome of an attempted fix.
type FixResult struct {
	// Path is the file or directory that was targeted.
	Path string `json:"path"`

	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// Fix runs Fix on every registered check that implements Fixer and
// reports something to fix. Call it after Run.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		f, ok := check.(Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		results = append(results, f.Fix()...)
	}
	return results
}
