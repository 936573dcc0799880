package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/logging"
	"github.com/thoreinstein/hsv/internal/version"
)

var current = version.New(3, 0, 0)

const (
	incompatibleDoc = `{"version":"1.0.0","judgments":[{"threshold":100,"color":[1,1,1,1]}]}`
	migratableDoc   = `{"version":"2.0.0","customKey":{"keep":true},"judgments":[
		{"threshold":0,"text":"miss","color":[1,0,0,1],"fade":true},
		{"threshold":110,"text":"perfect","color":[1,1,1,1],"fade":false}]}`
	duplicateDoc = `{"version":"3.0.0","judgments":[
		{"threshold":50,"color":[1,1,1,1]},
		{"threshold":50,"color":[0,0,0,1]}]}`
	compatibleDoc = `{"version":"3.0.0","judgments":[{"threshold":115,"color":[1,1,1,1]}],
		"beforeCutAngleJudgments":[],"accuracyJudgments":[],"afterCutAngleJudgments":[]}`
	newerDoc = `{"version":"9.0.0","judgments":[{"threshold":115,"color":[1,1,1,1]}]}`
)

// newTestStore returns a bootstrapped store in a fresh directory.
func newTestStore(t *testing.T, opts ...Option) (*Store, *MemorySelection) {
	t.Helper()
	sel := NewMemorySelection("")
	opts = append([]Option{WithLogger(logging.ForTest(t)), WithSelection(sel)}, opts...)
	s := New(filepath.Join(t.TempDir(), "configs"), current, opts...)
	require.NoError(t, s.Bootstrap())
	return s, sel
}

func writeDoc(t *testing.T, s *Store, name, content string) string {
	t.Helper()
	path := filepath.Join(s.Dir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDoc(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	return got
}

func byName(t *testing.T, infos []ConfigFileInfo, name string) ConfigFileInfo {
	t.Helper()
	for _, info := range infos {
		if info.Name == name {
			return info
		}
	}
	t.Fatalf("no configuration named %q", name)
	return ConfigFileInfo{}
}

func TestBootstrap_CreatesDirectoryAndDefault(t *testing.T) {
	s, _ := newTestStore(t)

	path := filepath.Join(s.Dir(), document.DefaultFileName)
	cfg, err := s.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsDefaultConfig)
	assert.Equal(t, current, *cfg.Version)

	state, err := s.Classifier().Classify(cfg)
	require.NoError(t, err)
	assert.Equal(t, classify.Compatible, state)
}

func TestBootstrap_ExistingDirectoryWritesNothing(t *testing.T) {
	s, _ := newTestStore(t)
	path := filepath.Join(s.Dir(), document.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0o644))

	require.NoError(t, s.Bootstrap())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data))

	// A deleted default is not recreated either.
	require.NoError(t, os.Remove(path))
	require.NoError(t, s.Bootstrap())
	assert.NoFileExists(t, path)
}

func TestBootstrap_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "configs")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	s := New(file, current, WithLogger(logging.ForTest(t)))
	assert.Error(t, s.Bootstrap())
}

func TestListAvailable_Classifies(t *testing.T) {
	s, _ := newTestStore(t)
	writeDoc(t, s, "old.json", incompatibleDoc)
	writeDoc(t, s, "migratable.json", migratableDoc)
	writeDoc(t, s, "dupes.json", duplicateDoc)
	writeDoc(t, s, "current.json", compatibleDoc)
	writeDoc(t, s, "future.json", newerDoc)
	writeDoc(t, s, "garbage.json", "{not json")
	writeDoc(t, s, "noversion.json", `{"judgments":[]}`)
	writeDoc(t, s, ".hidden.json", compatibleDoc)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "subdir"), 0o755))

	infos, err := s.ListAvailable(t.Context())
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"current", "default", "dupes", "future", "garbage", "migratable", "noversion", "old"}, names)

	tests := map[string]classify.State{
		"old":        classify.Incompatible,
		"migratable": classify.NeedsMigration,
		"dupes":      classify.ValidationFailed,
		"current":    classify.Compatible,
		"default":    classify.Compatible,
		"future":     classify.NewerVersion,
		"garbage":    classify.Broken,
		"noversion":  classify.Broken,
	}
	for name, want := range tests {
		assert.Equal(t, want, byName(t, infos, name).State, name)
	}

	dupes := byName(t, infos, "dupes")
	assert.True(t, errors.Is(dupes.Err, judgment.ErrDuplicateThreshold))
	assert.Contains(t, dupes.Err.Error(), "dupes")

	garbage := byName(t, infos, "garbage")
	assert.Nil(t, garbage.Config)
	assert.True(t, errors.Is(garbage.Err, ErrParse))
}

func TestListAvailable_LogsValidationFailureWithThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelTrace, Output: &buf})
	s, _ := newTestStore(t, WithLogger(logger))
	writeDoc(t, s, "dupes.json", duplicateDoc)

	_, err := s.ListAvailable(t.Context())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "configuration failed validation")
	assert.Contains(t, out, "name=dupes")
	assert.Contains(t, out, "threshold=50")
}

func TestListAvailable_RecreatesMissingDirectory(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelTrace, Output: &buf})
	s, _ := newTestStore(t, WithLogger(logger))
	require.NoError(t, os.RemoveAll(s.Dir()))
	buf.Reset()

	infos, err := s.ListAvailable(t.Context())
	require.NoError(t, err)

	require.Len(t, infos, 1)
	assert.Equal(t, "default", infos[0].Name)
	assert.Contains(t, buf.String(), "recreating")
}

func TestListAvailable_Canceled(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.ListAvailable(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListAvailable_ConcurrencyOfOne(t *testing.T) {
	s, _ := newTestStore(t, WithConcurrency(1))
	for _, name := range []string{"a.json", "b.json", "c.json"} {
		writeDoc(t, s, name, compatibleDoc)
	}

	infos, err := s.ListAvailable(t.Context())
	require.NoError(t, err)
	assert.Len(t, infos, 4)
}

func TestLoad_Errors(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load(filepath.Join(s.Dir(), "missing.json"))
	assert.True(t, errors.Is(err, ErrIO))
	assert.False(t, errors.Is(err, ErrParse))

	_, err = s.Load(writeDoc(t, s, "array.json", `[1,2,3]`))
	assert.True(t, errors.Is(err, ErrParse))

	_, err = s.Load(writeDoc(t, s, "badversion.json", `{"version":"two"}`))
	assert.True(t, errors.Is(err, ErrParse))
}

func TestLoad_Cache(t *testing.T) {
	s, _ := newTestStore(t)
	path := writeDoc(t, s, "doc.json", compatibleDoc)

	first, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.cache.len())

	// Callers own what they get back.
	first.Judgments[0].Threshold = 1
	second, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 115, second.Judgments[0].Threshold)

	// A changed file is reparsed.
	require.NoError(t, os.WriteFile(path, []byte(newerDoc), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	third, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, version.New(9, 0, 0), *third.Version)
}

func TestLoad_CacheDisabled(t *testing.T) {
	s, _ := newTestStore(t, WithCacheSize(0))
	path := writeDoc(t, s, "doc.json", compatibleDoc)

	_, err := s.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.cache.len())
}

func TestSave_PreservesUnknownFields(t *testing.T) {
	s, _ := newTestStore(t)
	path := writeDoc(t, s, "doc.json", `{"version":"3.0.0","theme":"dark","judgments":[{"threshold":1,"color":[1,1,1,1],"glow":2}]}`)

	cfg, err := s.Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(path, cfg))

	got := readDoc(t, path)
	assert.Equal(t, "dark", got["theme"])
	judgments := got["judgments"].([]any)
	assert.Equal(t, float64(2), judgments[0].(map[string]any)["glow"])
}
