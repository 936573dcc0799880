package migration

import (
	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/version"
)

// Default returns the chain of every document upgrade shipped so far.
func Default() *Chain {
	return NewChain(
		Step{Version: version.New(2, 0, 0), Name: "introduce segment lists", Apply: introduceSegmentLists},
		Step{Version: version.New(2, 1, 0), Name: "renumber thresholds", Apply: renumberThresholds},
		Step{Version: version.New(2, 2, 3), Name: "enable intermediate updates", Apply: enableIntermediateUpdates},
	)
}

// introduceSegmentLists gives each absent segment list a single catch-all segment.
func introduceSegmentLists(cfg *document.Configuration) bool {
	for _, list := range []*[]judgment.Segment{
		&cfg.BeforeCutAngleJudgments,
		&cfg.AccuracyJudgments,
		&cfg.AfterCutAngleJudgments,
	} {
		if *list == nil {
			*list = []judgment.Segment{document.DefaultSegment()}
		}
	}
	return true
}

// Scores were rescaled when the accuracy band grew from 10 to 15 points,
// which moved the perfect-hit judgment from 110 to 115.
var (
	judgmentRenumbering = map[int]int{110: 115}
	accuracyRenumbering = map[int]int{10: 15}
)

func renumberThresholds(cfg *document.Configuration) bool {
	for i := range cfg.Judgments {
		if to, ok := judgmentRenumbering[cfg.Judgments[i].Threshold]; ok {
			cfg.Judgments[i].Threshold = to
		}
	}
	for i := range cfg.AccuracyJudgments {
		if to, ok := accuracyRenumbering[cfg.AccuracyJudgments[i].Threshold]; ok {
			cfg.AccuracyJudgments[i].Threshold = to
		}
	}
	return true
}

func enableIntermediateUpdates(cfg *document.Configuration) bool {
	cfg.DoIntermediateUpdates = true
	return true
}
