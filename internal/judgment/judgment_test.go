package judgment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJudgment_PreservesUnknownFields(t *testing.T) {
	in := `{"threshold":115,"text":"%BFantastic","color":[1,1,1,1],"fade":false,"outline":{"width":2}}`

	var got Judgment
	require.NoError(t, json.Unmarshal([]byte(in), &got))
	assert.Equal(t, 115, got.Threshold)
	require.Contains(t, got.Extra, "outline")

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestSegment_PreservesUnknownFields(t *testing.T) {
	in := `{"threshold":70,"text":"+","note":"kept"}`

	var got Segment
	require.NoError(t, json.Unmarshal([]byte(in), &got))
	assert.Equal(t, 70, got.Threshold)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestJudgment_RejectsWrongShape(t *testing.T) {
	var got Judgment
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"threshold":"high"}`), &got))
}

func TestClone_IsDeep(t *testing.T) {
	orig := []Judgment{{
		Threshold: 1,
		Color:     []float64{0, 0, 0, 1},
		Extra:     map[string]json.RawMessage{"x": json.RawMessage(`1`)},
	}}

	cp := CloneJudgments(orig)
	cp[0].Color[0] = 1
	cp[0].Extra["x"] = json.RawMessage(`2`)

	assert.Equal(t, 0.0, orig[0].Color[0])
	assert.JSONEq(t, `1`, string(orig[0].Extra["x"]))
	assert.Nil(t, CloneJudgments(nil))
	assert.Nil(t, CloneSegments(nil))
}
