// Package validator holds the issue types produced when checking judgment
// lists, and the reporter the validate command uses to print them.
//
// An [Issue] is an error, so checks can return one directly. A [Result]
// collects every issue found in a document:
//
//	var res validator.Result
//	if len(cfg.Judgments) == 0 {
//		res.AddError("judgments", "at least one judgment is required", nil)
//	}
//	if res.HasErrors() {
//		// not selectable
//	}
package validator
