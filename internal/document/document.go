// Package document defines the configuration document users author to
// customize score display, and its JSON encoding.
package document

import (
	"encoding/json"

	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/version"
)

// Configuration is a single user-authored configuration document.
//
// Fields this package does not model are kept in Extra and written back
// unchanged. A nil Version marks a document that can never be used.
type Configuration struct {
	Version               *version.Version `json:"version,omitempty"`
	IsDefaultConfig       bool             `json:"isDefaultConfig"`
	DisplayMode           string           `json:"displayMode,omitempty"`
	DoIntermediateUpdates bool             `json:"doIntermediateUpdates"`

	Judgments []judgment.Judgment `json:"judgments"`

	BeforeCutAngleJudgments []judgment.Segment `json:"beforeCutAngleJudgments"`
	AccuracyJudgments       []judgment.Segment `json:"accuracyJudgments"`
	AfterCutAngleJudgments  []judgment.Segment `json:"afterCutAngleJudgments"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownKeys = []string{
	"version",
	"isDefaultConfig",
	"displayMode",
	"doIntermediateUpdates",
	"judgments",
	"beforeCutAngleJudgments",
	"accuracyJudgments",
	"afterCutAngleJudgments",
}

// UnmarshalJSON decodes a document, keeping unknown top-level fields in Extra.
// Anything other than a JSON object is rejected.
func (c *Configuration) UnmarshalJSON(data []byte) error {
	type plain Configuration
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := judgment.ExtraFields(data, knownKeys)
	if err != nil {
		return err
	}
	*c = Configuration(p)
	c.Extra = extra
	return nil
}

// MarshalJSON encodes the document including preserved unknown fields.
func (c Configuration) MarshalJSON() ([]byte, error) {
	type plain Configuration
	return judgment.MergeExtra(plain(c), c.Extra)
}

// Clone returns a deep copy of c.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Version != nil {
		v := *c.Version
		cp.Version = &v
	}
	cp.Judgments = judgment.CloneJudgments(c.Judgments)
	cp.BeforeCutAngleJudgments = judgment.CloneSegments(c.BeforeCutAngleJudgments)
	cp.AccuracyJudgments = judgment.CloneSegments(c.AccuracyJudgments)
	cp.AfterCutAngleJudgments = judgment.CloneSegments(c.AfterCutAngleJudgments)
	if c.Extra != nil {
		cp.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, raw := range c.Extra {
			cp.Extra[k] = append(json.RawMessage(nil), raw...)
		}
	}
	return &cp
}
