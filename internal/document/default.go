package document

import (
	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/version"
)

// DefaultFileName is the reserved name of the document written when the
// documents directory is created.
const DefaultFileName = "default.json"

// DisplayModeFormat renders judgment text using its format tokens.
const DisplayModeFormat = "format"

// Default returns the stock configuration stamped with version v.
func Default(v version.Version) *Configuration {
	return &Configuration{
		Version:               &v,
		IsDefaultConfig:       true,
		DisplayMode:           DisplayModeFormat,
		DoIntermediateUpdates: true,
		Judgments: []judgment.Judgment{
			{Threshold: 115, Text: "%BFantastic%A%n%s", Color: []float64{1, 1, 1, 1}},
			{Threshold: 101, Text: "<size=80%>%BExcellent%A</size>%n%s", Color: []float64{0, 1, 0, 1}, Fade: true},
			{Threshold: 90, Text: "<size=80%>%BGreat%A</size>%n%s", Color: []float64{1, 0.980392158, 0, 1}, Fade: true},
			{Threshold: 80, Text: "<size=80%>%BGood%A</size>%n%s", Color: []float64{1, 0.6, 0, 1}, Fade: true},
			{Threshold: 60, Text: "<size=80%>%BDecent%A</size>%n%s", Color: []float64{1, 0, 0, 1}, Fade: true},
			{Threshold: 0, Text: "<size=80%>%BWay Off%A</size>%n%s", Color: []float64{0.5, 0, 0, 1}, Fade: true},
		},
		BeforeCutAngleJudgments: []judgment.Segment{
			{Threshold: 70, Text: "+"},
			{Threshold: 0, Text: " "},
		},
		AccuracyJudgments: []judgment.Segment{
			{Threshold: 15, Text: " + "},
			{Threshold: 0, Text: " "},
		},
		AfterCutAngleJudgments: []judgment.Segment{
			{Threshold: 30, Text: " + "},
			{Threshold: 0, Text: " "},
		},
	}
}

// DefaultSegment is the single segment a list starts with when a migration
// introduces it.
func DefaultSegment() judgment.Segment {
	return judgment.Segment{Threshold: 0, Text: ""}
}
