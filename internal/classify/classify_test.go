package classify

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/migration"
	"github.com/thoreinstein/hsv/internal/version"
)

var classifier = New(version.New(3, 0, 0), migration.Default())

func doc(v string, judgments ...judgment.Judgment) *document.Configuration {
	cfg := &document.Configuration{Judgments: judgments}
	if v != "" {
		ver := version.MustParse(v)
		cfg.Version = &ver
	}
	return cfg
}

func valid(threshold int) judgment.Judgment {
	return judgment.Judgment{Threshold: threshold, Color: []float64{1, 1, 1, 1}, Fade: true}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		cfg  *document.Configuration
		want State
	}{
		{"nil document", nil, Broken},
		{"missing version", doc("", valid(100)), Broken},
		{"missing version with invalid judgments", doc("", valid(50), valid(50)), Broken},
		{"newer than app", doc("3.0.1", valid(100)), NewerVersion},
		{"newer major than app", doc("4.0.0", valid(50), valid(50)), NewerVersion},
		{"below minimum migratable", doc("1.0.0", valid(100)), Incompatible},
		{"below minimum with invalid judgments", doc("1.9.9", valid(50), valid(50)), Incompatible},
		{"duplicate thresholds", doc("2.0.0", valid(50), valid(50)), ValidationFailed},
		{"no judgments", doc("3.0.0"), ValidationFailed},
		{"bad color", doc("3.0.0", judgment.Judgment{Threshold: 1, Color: []float64{1, 1}}), ValidationFailed},
		{"minimum migratable", doc("2.0.0", valid(110)), NeedsMigration},
		{"maximum migration needed", doc("2.2.3", valid(115)), NeedsMigration},
		{"just past migrations", doc("2.2.4", valid(115)), Compatible},
		{"current", doc("3.0.0", valid(115)), Compatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.Classify(tt.cfg)
			assert.Equal(t, tt.want, got)
			if tt.want == ValidationFailed {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassify_SegmentDuplicates(t *testing.T) {
	for _, field := range []string{"before", "accuracy", "after"} {
		t.Run(field, func(t *testing.T) {
			cfg := doc("3.0.0", valid(115))
			dup := []judgment.Segment{{Threshold: 5}, {Threshold: 5}}
			switch field {
			case "before":
				cfg.BeforeCutAngleJudgments = dup
			case "accuracy":
				cfg.AccuracyJudgments = dup
			case "after":
				cfg.AfterCutAngleJudgments = dup
			}

			got, err := classifier.Classify(cfg)
			assert.Equal(t, ValidationFailed, got)
			assert.True(t, errors.Is(err, judgment.ErrDuplicateThreshold))
		})
	}
}

func TestClassify_CanonicalizesSelectableDocuments(t *testing.T) {
	cfg := doc("3.0.0", valid(0), valid(115), valid(60))
	cfg.AccuracyJudgments = []judgment.Segment{{Threshold: 0}, {Threshold: 15}}

	got, err := classifier.Classify(cfg)
	require.NoError(t, err)
	require.Equal(t, Compatible, got)

	assert.Equal(t, 115, cfg.Judgments[0].Threshold)
	assert.False(t, cfg.Judgments[0].Fade)
	assert.Equal(t, 60, cfg.Judgments[1].Threshold)
	assert.Equal(t, 15, cfg.AccuracyJudgments[0].Threshold)
	assert.Nil(t, cfg.BeforeCutAngleJudgments)
}

func TestClassify_FailedValidationLeavesDocument(t *testing.T) {
	cfg := doc("3.0.0", valid(0), valid(115))
	cfg.AfterCutAngleJudgments = []judgment.Segment{{Threshold: 1}, {Threshold: 1}}

	got, _ := classifier.Classify(cfg)
	require.Equal(t, ValidationFailed, got)
	assert.Equal(t, 0, cfg.Judgments[0].Threshold, "lists are only rewritten when all pass")
}

func TestSelectable(t *testing.T) {
	for _, s := range []State{Broken, NewerVersion, Incompatible, ValidationFailed} {
		assert.False(t, Selectable(s), s.String())
	}
	for _, s := range SelectableStates() {
		assert.True(t, Selectable(s), s.String())
	}
	assert.ElementsMatch(t, []State{NeedsMigration, Compatible}, SelectableStates())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "needs-migration", NeedsMigration.String())
	assert.Equal(t, "unknown", State(42).String())

	text, err := Compatible.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "compatible", string(text))
}
