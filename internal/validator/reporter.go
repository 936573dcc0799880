package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format selects how a Reporter prints results.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// maxValueWidth truncates printed values.
const maxValueWidth = 50

// Reporter writes validation results for one document at a time.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter returns a Reporter writing to out. Unknown formats print text.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{out: out, format: format}
}

// Report writes result for the named document. A nil result is a pass.
func (r *Reporter) Report(document string, result *Result) error {
	if result == nil {
		result = &Result{}
	}
	if r.format == FormatJSON {
		return r.writeJSON(document, result)
	}
	r.writeText(document, result)
	return nil
}

func (r *Reporter) writeJSON(document string, result *Result) error {
	issues := result.Issues
	if issues == nil {
		issues = []Issue{}
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	err := enc.Encode(struct {
		Document string  `json:"document,omitempty"`
		Valid    bool    `json:"valid"`
		Issues   []Issue `json:"issues"`
	}{document, !result.HasErrors(), issues})
	return errors.Wrap(err, "encoding JSON report")
}

type section struct {
	title  string
	issues []Issue
	color  color.Attribute
}

func (r *Reporter) writeText(document string, result *Result) {
	if document != "" {
		document += ": "
	}
	errs, warnings := result.Errors(), result.Warnings()
	sections := []section{
		{"Errors:", errs, color.FgRed},
		{"Warnings:", warnings, color.FgYellow},
		{"Notes:", result.Infos(), color.FgCyan},
	}

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ %sValidation passed", document))
		for _, i := range sections[2].issues {
			fmt.Fprintln(r.out, formatIssue(i, sections[2].color))
		}
		return
	}

	verdict := "Validation failed"
	var counts []string
	if len(errs) > 0 {
		counts = append(counts, color.RedString("%d error(s)", len(errs)))
	} else {
		verdict = "Validation passed with warnings"
	}
	if len(warnings) > 0 {
		counts = append(counts, color.YellowString("%d warning(s)", len(warnings)))
	}
	fmt.Fprintf(r.out, "%s%s: %s\n\n", document, verdict, strings.Join(counts, ", "))

	for _, s := range sections {
		if len(s.issues) == 0 {
			continue
		}
		fmt.Fprintln(r.out, s.title)
		for _, i := range s.issues {
			fmt.Fprintln(r.out, formatIssue(i, s.color))
		}
		fmt.Fprintln(r.out)
	}
}

// formatIssue renders "  • field: message (k=v, ...) [value]".
func formatIssue(i Issue, attr color.Attribute) string {
	dim := color.New(color.FgHiBlack)
	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Field != "" {
		sb.WriteString(color.New(attr).Sprint(i.Field) + ": ")
	}
	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		pairs := make([]string, 0, len(i.Context))
		for k, v := range i.Context {
			pairs = append(pairs, k+"="+v)
		}
		slices.Sort(pairs)
		sb.WriteString(" " + dim.Sprintf("(%s)", strings.Join(pairs, ", ")))
	}

	if i.Value != nil {
		v := fmt.Sprint(i.Value)
		if len(v) > maxValueWidth {
			v = v[:maxValueWidth-3] + "..."
		}
		sb.WriteString(dim.Sprintf(" [%s]", v))
	}
	return sb.String()
}
