package judgment

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/hsv/internal/validator"
)

// Validation errors. Returned errors are *validator.Issue values that match
// these sentinels with errors.Is.
var (
	// ErrNoJudgments indicates the judgment list is missing or empty.
	ErrNoJudgments = errors.New("no judgments")

	// ErrInvalidColor indicates a color without exactly four components in [0, 1].
	ErrInvalidColor = errors.New("invalid color")

	// ErrDuplicateThreshold indicates two entries of one list share a threshold.
	ErrDuplicateThreshold = errors.New("duplicate threshold")
)

// ValidateColor checks that j has exactly four color components, each within
// the closed interval [0, 1].
func ValidateColor(j Judgment) error {
	if len(j.Color) != ColorComponents {
		return validator.NewError(ErrInvalidColor, "color",
			fmt.Sprintf("must have exactly %d components", ColorComponents), len(j.Color)).
			With("threshold", strconv.Itoa(j.Threshold))
	}
	for i, c := range j.Color {
		if !(c >= 0 && c <= 1) {
			return validator.NewError(ErrInvalidColor, "color",
				fmt.Sprintf("component %d must be within [0, 1]", i), c).
				With("threshold", strconv.Itoa(j.Threshold))
		}
	}
	return nil
}

// CanonicalizeJudgments returns list sorted by descending threshold with the
// top entry's fade disabled, or the first violation found.
//
// The sort is stable. Nothing sits above the highest judgment, so it has
// nothing to fade toward. Each distinct threshold must carry a valid color
// and no threshold may appear twice. The input slice is not modified.
func CanonicalizeJudgments(list []Judgment) ([]Judgment, error) {
	if len(list) == 0 {
		return nil, validator.NewError(ErrNoJudgments, "judgments", "at least one judgment is required", nil)
	}

	sorted := CloneJudgments(list)
	SortJudgments(sorted)

	sorted[0].Fade = false
	if err := ValidateColor(sorted[0]); err != nil {
		return nil, err
	}

	prev := sorted[0].Threshold
	for _, j := range sorted[1:] {
		if j.Threshold == prev {
			return nil, duplicate("judgments", j.Threshold)
		}
		if err := ValidateColor(j); err != nil {
			return nil, err
		}
		prev = j.Threshold
	}

	return sorted, nil
}

// CanonicalizeSegments returns list sorted by descending threshold, or an
// error if two segments share a threshold. field names the list in
// diagnostics. A nil list stays nil; an empty list is valid.
func CanonicalizeSegments(field string, list []Segment) ([]Segment, error) {
	if list == nil {
		return nil, nil
	}

	sorted := CloneSegments(list)
	SortSegments(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Threshold == sorted[i-1].Threshold {
			return nil, duplicate(field, sorted[i].Threshold)
		}
	}

	return sorted, nil
}

// SortJudgments orders list by descending threshold in place, keeping the
// relative order of equal thresholds. It does not validate.
func SortJudgments(list []Judgment) {
	slices.SortStableFunc(list, func(a, b Judgment) int {
		return cmp.Compare(b.Threshold, a.Threshold)
	})
}

// SortSegments is SortJudgments for segments.
func SortSegments(list []Segment) {
	slices.SortStableFunc(list, func(a, b Segment) int {
		return cmp.Compare(b.Threshold, a.Threshold)
	})
}

func duplicate(field string, threshold int) error {
	return validator.NewError(ErrDuplicateThreshold, field, "threshold appears more than once", threshold).
		With("threshold", strconv.Itoa(threshold))
}

// ValidateJudgments canonicalizes *list in place. On failure *list is left
// as it was.
func ValidateJudgments(list *[]Judgment) error {
	sorted, err := CanonicalizeJudgments(*list)
	if err != nil {
		return err
	}
	*list = sorted
	return nil
}

// ValidateSegmentList is ValidateJudgments for a segment list.
func ValidateSegmentList(field string, list *[]Segment) error {
	sorted, err := CanonicalizeSegments(field, *list)
	if err != nil {
		return err
	}
	*list = sorted
	return nil
}
