package judgment

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/hsv/internal/validator"
)

var white = []float64{1, 1, 1, 1}

func j(threshold int, fade bool) Judgment {
	return Judgment{Threshold: threshold, Text: "t", Color: white, Fade: fade}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		color   []float64
		wantErr bool
	}{
		{"white", []float64{1, 1, 1, 1}, false},
		{"zeros", []float64{0, 0, 0, 0}, false},
		{"mixed inclusive bounds", []float64{0, 0.5, 1, 0.25}, false},
		{"three components", []float64{1, 1, 1}, true},
		{"five components", []float64{1, 1, 1, 1, 1}, true},
		{"nil", nil, true},
		{"above one", []float64{1, 1.0001, 1, 1}, true},
		{"negative", []float64{1, 1, -0.1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(Judgment{Threshold: 42, Color: tt.color})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidColor))

			var issue *validator.Issue
			require.True(t, errors.As(err, &issue))
			assert.Equal(t, "42", issue.Context["threshold"])
		})
	}
}

func TestCanonicalizeJudgments_SortsAndClearsTopFade(t *testing.T) {
	in := []Judgment{j(60, true), j(115, true), j(0, true), j(90, false)}

	out, err := CanonicalizeJudgments(in)
	require.NoError(t, err)

	thresholds := make([]int, len(out))
	for i, o := range out {
		thresholds[i] = o.Threshold
	}
	assert.Equal(t, []int{115, 90, 60, 0}, thresholds)
	assert.False(t, out[0].Fade, "top judgment must not fade")
	assert.True(t, out[2].Fade, "lower judgments keep their fade flag")

	// Input is left untouched.
	assert.Equal(t, 60, in[0].Threshold)
	assert.True(t, in[1].Fade)
}

func TestCanonicalizeJudgments_StrictlyDescending(t *testing.T) {
	inputs := [][]Judgment{
		{j(1, false)},
		{j(3, true), j(1, true), j(2, true)},
		{j(0, false), j(100, true), j(50, true), j(75, false), j(25, true)},
	}

	for _, in := range inputs {
		out, err := CanonicalizeJudgments(in)
		require.NoError(t, err)
		for i := 1; i < len(out); i++ {
			assert.Greater(t, out[i-1].Threshold, out[i].Threshold)
		}
		assert.False(t, out[0].Fade)
	}
}

func TestCanonicalizeJudgments_Duplicates(t *testing.T) {
	orders := [][]Judgment{
		{j(50, false), j(50, false)},
		{j(50, false), j(100, false), j(50, true)},
		{j(100, false), j(50, true), j(0, false), j(50, false)},
		{j(100, false), j(100, true)},
	}

	for _, in := range orders {
		_, err := CanonicalizeJudgments(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateThreshold), "got %v", err)
	}
}

func TestCanonicalizeJudgments_BadColor(t *testing.T) {
	tests := []struct {
		name string
		in   []Judgment
	}{
		{"top entry", []Judgment{{Threshold: 115, Color: []float64{1, 1, 1}}, j(0, true)}},
		{"lower entry", []Judgment{j(115, false), {Threshold: 0, Color: []float64{2, 0, 0, 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CanonicalizeJudgments(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidColor))
		})
	}
}

func TestCanonicalizeJudgments_Empty(t *testing.T) {
	for _, in := range [][]Judgment{nil, {}} {
		_, err := CanonicalizeJudgments(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoJudgments))
	}
}

func TestCanonicalizeSegments(t *testing.T) {
	out, err := CanonicalizeSegments("accuracyJudgments", []Segment{{Threshold: 0}, {Threshold: 15, Text: "+"}, {Threshold: 5}})
	require.NoError(t, err)
	assert.Equal(t, []int{15, 5, 0}, []int{out[0].Threshold, out[1].Threshold, out[2].Threshold})

	_, err = CanonicalizeSegments("beforeCutAngleJudgments", []Segment{{Threshold: 70}, {Threshold: 0}, {Threshold: 70}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateThreshold))

	var issue *validator.Issue
	require.True(t, errors.As(err, &issue))
	assert.Equal(t, "beforeCutAngleJudgments", issue.Field)

	out, err = CanonicalizeSegments("afterCutAngleJudgments", nil)
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = CanonicalizeSegments("afterCutAngleJudgments", []Segment{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestValidateJudgments_InPlace(t *testing.T) {
	list := []Judgment{j(60, true), j(115, true), j(0, true)}
	require.NoError(t, ValidateJudgments(&list))
	assert.Equal(t, []int{115, 60, 0}, []int{list[0].Threshold, list[1].Threshold, list[2].Threshold})
	assert.False(t, list[0].Fade)
	assert.True(t, list[1].Fade)

	bad := []Judgment{j(50, true), j(60, true), j(50, false)}
	err := ValidateJudgments(&bad)
	assert.True(t, errors.Is(err, ErrDuplicateThreshold))
	assert.Equal(t, 50, bad[0].Threshold, "failed validation leaves the list alone")
}

func TestValidateSegmentList_InPlace(t *testing.T) {
	list := []Segment{{Threshold: 0}, {Threshold: 70}}
	require.NoError(t, ValidateSegmentList("beforeCutAngleJudgments", &list))
	assert.Equal(t, 70, list[0].Threshold)

	dup := []Segment{{Threshold: 5}, {Threshold: 5}}
	assert.Error(t, ValidateSegmentList("accuracyJudgments", &dup))
}

func TestSortJudgments_Stable(t *testing.T) {
	list := []Judgment{{Threshold: 5, Text: "a"}, {Threshold: 9}, {Threshold: 5, Text: "b"}}
	SortJudgments(list)
	assert.Equal(t, []string{"", "a", "b"}, []string{list[0].Text, list[1].Text, list[2].Text})
}
