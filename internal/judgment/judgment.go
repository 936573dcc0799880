// Package judgment defines the threshold-keyed judgment entries of a
// configuration document and the rules that canonicalize and validate them.
package judgment

import (
	"encoding/json"
	"slices"

	"github.com/cockroachdb/errors"
)

// ColorComponents is the number of RGBA components a judgment color carries.
const ColorComponents = 4

// Judgment is a scoring-feedback entry shown for scores at or above Threshold.
type Judgment struct {
	Threshold int       `json:"threshold"`
	Text      string    `json:"text"`
	Color     []float64 `json:"color"`
	Fade      bool      `json:"fade"`

	// Extra holds display fields this package does not interpret.
	Extra map[string]json.RawMessage `json:"-"`
}

// Segment is a threshold-keyed entry of the cut-angle and accuracy lists.
// Segments carry no color.
type Segment struct {
	Threshold int    `json:"threshold"`
	Text      string `json:"text"`

	Extra map[string]json.RawMessage `json:"-"`
}

var (
	judgmentKeys = []string{"threshold", "text", "color", "fade"}
	segmentKeys  = []string{"threshold", "text"}
)

// UnmarshalJSON decodes a judgment and keeps unknown fields in Extra.
func (j *Judgment) UnmarshalJSON(data []byte) error {
	type plain Judgment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := ExtraFields(data, judgmentKeys)
	if err != nil {
		return err
	}
	*j = Judgment(p)
	j.Extra = extra
	return nil
}

// MarshalJSON encodes a judgment including any preserved unknown fields.
func (j Judgment) MarshalJSON() ([]byte, error) {
	type plain Judgment
	return MergeExtra(plain(j), j.Extra)
}

// UnmarshalJSON decodes a segment and keeps unknown fields in Extra.
func (s *Segment) UnmarshalJSON(data []byte) error {
	type plain Segment
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := ExtraFields(data, segmentKeys)
	if err != nil {
		return err
	}
	*s = Segment(p)
	s.Extra = extra
	return nil
}

// MarshalJSON encodes a segment including any preserved unknown fields.
func (s Segment) MarshalJSON() ([]byte, error) {
	type plain Segment
	return MergeExtra(plain(s), s.Extra)
}

// Clone returns a deep copy of j.
func (j Judgment) Clone() Judgment {
	j.Color = slices.Clone(j.Color)
	j.Extra = cloneExtra(j.Extra)
	return j
}

// Clone returns a deep copy of s.
func (s Segment) Clone() Segment {
	s.Extra = cloneExtra(s.Extra)
	return s
}

// CloneJudgments deep-copies a judgment list, preserving nil.
func CloneJudgments(list []Judgment) []Judgment {
	if list == nil {
		return nil
	}
	out := make([]Judgment, len(list))
	for i, j := range list {
		out[i] = j.Clone()
	}
	return out
}

// CloneSegments deep-copies a segment list, preserving nil.
func CloneSegments(list []Segment) []Segment {
	if list == nil {
		return nil
	}
	out := make([]Segment, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// ExtraFields returns the members of the JSON object data whose keys are not
// in known. It returns nil when there are none.
func ExtraFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// MergeExtra marshals v and adds the extra members that v does not already set.
func MergeExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(err, "merging extra fields")
	}
	for k, raw := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}

func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, raw := range extra {
		out[k] = slices.Clone(raw)
	}
	return out
}
