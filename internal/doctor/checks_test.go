package doctor

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/store"
	"github.com/thoreinstein/hsv/internal/version"
)

const (
	goodDoc      = `{"version":"3.0.0","judgments":[{"threshold":115,"color":[1,1,1,1]}]}`
	duplicateDoc = `{"version":"3.0.0","judgments":[{"threshold":50,"color":[1,1,1,1]},{"threshold":50,"color":[1,1,1,1]}]}`
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), "configs"), version.New(3, 0, 0))
}

func bootstrapped(t *testing.T) *store.Store {
	t.Helper()
	s := newStore(t)
	require.NoError(t, s.Bootstrap())
	return s
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSettingsCheck(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "config.yaml", "version: 1\n")

	tests := []struct {
		name string
		path string
		load func() (*config.Config, error)
		want Severity
	}{
		{"missing file", filepath.Join(dir, "none.yaml"), nil, SeverityInfo},
		{"unreadable", path, func() (*config.Config, error) { return nil, errors.New("bad yaml") }, SeverityError},
		{"invalid", path, func() (*config.Config, error) { return &config.Config{Version: 1, LogLevel: "loud"}, nil }, SeverityError},
		{"valid", path, func() (*config.Config, error) { return &config.Config{Version: 1}, nil }, SeverityPass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSettingsCheck(tt.path, tt.load).Run(t.Context())
			assert.Equal(t, tt.want, result.Status, result.Message)
			assert.Equal(t, tt.path, result.Details["path"])
		})
	}
}

func TestDirectoryCheck_MissingIsFixed(t *testing.T) {
	s := newStore(t)
	check := NewDirectoryCheck(s)

	result := check.Run(t.Context())
	assert.Equal(t, SeverityWarning, result.Status)
	assert.True(t, result.Fixable)
	require.True(t, check.CanFix())

	fixes := check.Fix()
	require.Len(t, fixes, 1)
	assert.True(t, fixes[0].Fixed)
	assert.FileExists(t, filepath.Join(s.Dir(), "default.json"))

	assert.Equal(t, SeverityPass, check.Run(t.Context()).Status)
	assert.False(t, check.CanFix())
}

func TestDirectoryCheck_NotADirectory(t *testing.T) {
	path := write(t, t.TempDir(), "configs", "")
	check := NewDirectoryCheck(store.New(path, version.New(3, 0, 0)))

	result := check.Run(t.Context())
	assert.Equal(t, SeverityError, result.Status)
	assert.False(t, check.CanFix())
}

func TestDirectoryCheck_WorldWritable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	s := bootstrapped(t)
	require.NoError(t, os.Chmod(s.Dir(), 0o777))
	check := NewDirectoryCheck(s)

	result := check.Run(t.Context())
	require.Equal(t, SeverityWarning, result.Status)
	assert.Equal(t, "0777", result.Details["permissions"])

	fixes := check.Fix()
	require.Len(t, fixes, 1)
	assert.True(t, fixes[0].Fixed)

	info, err := os.Stat(s.Dir())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestDocumentsCheck(t *testing.T) {
	t.Run("all selectable", func(t *testing.T) {
		s := bootstrapped(t)
		write(t, s.Dir(), "good.json", goodDoc)

		result := NewDocumentsCheck(s).Run(t.Context())
		assert.Equal(t, SeverityPass, result.Status)
		assert.Equal(t, map[string]int{"compatible": 2}, result.Details["states"])
	})

	t.Run("unusable documents", func(t *testing.T) {
		s := bootstrapped(t)
		write(t, s.Dir(), "dupes.json", duplicateDoc)
		write(t, s.Dir(), "junk.json", "{")

		result := NewDocumentsCheck(s).Run(t.Context())
		assert.Equal(t, SeverityWarning, result.Status)
		assert.Equal(t, map[string]string{"dupes": "validation-failed", "junk": "broken"}, result.Details["unusable"])
		assert.Contains(t, result.Message, "2 of 3")
	})

	t.Run("empty directory", func(t *testing.T) {
		s := bootstrapped(t)
		require.NoError(t, os.Remove(filepath.Join(s.Dir(), "default.json")))

		result := NewDocumentsCheck(s).Run(t.Context())
		assert.Equal(t, SeverityWarning, result.Status)
	})

	t.Run("missing directory is not recreated", func(t *testing.T) {
		s := newStore(t)

		result := NewDocumentsCheck(s).Run(t.Context())
		assert.Equal(t, SeverityInfo, result.Status)
		assert.NoDirExists(t, s.Dir())
	})
}

func TestSelectionCheck(t *testing.T) {
	t.Run("nothing selected", func(t *testing.T) {
		check := NewSelectionCheck(bootstrapped(t), store.NewMemorySelection(""))
		assert.Equal(t, SeverityInfo, check.Run(t.Context()).Status)
		assert.False(t, check.CanFix())
	})

	t.Run("selectable", func(t *testing.T) {
		s := bootstrapped(t)
		path := write(t, s.Dir(), "good.json", goodDoc)

		result := NewSelectionCheck(s, store.NewMemorySelection(path)).Run(t.Context())
		assert.Equal(t, SeverityPass, result.Status)
		assert.Equal(t, "compatible", result.Details["state"])
	})

	t.Run("missing file is forgotten", func(t *testing.T) {
		s := bootstrapped(t)
		sel := store.NewMemorySelection(filepath.Join(s.Dir(), "gone.json"))
		check := NewSelectionCheck(s, sel)

		assert.Equal(t, SeverityWarning, check.Run(t.Context()).Status)
		require.True(t, check.CanFix())
		fixes := check.Fix()
		require.Len(t, fixes, 1)
		assert.True(t, fixes[0].Fixed)
		assert.Empty(t, sel.SelectedPath())
	})

	t.Run("unselectable is forgotten", func(t *testing.T) {
		s := bootstrapped(t)
		path := write(t, s.Dir(), "dupes.json", duplicateDoc)
		check := NewSelectionCheck(s, store.NewMemorySelection(path))

		result := check.Run(t.Context())
		assert.Equal(t, SeverityWarning, result.Status)
		assert.Equal(t, "validation-failed", result.Details["state"])
		assert.True(t, check.CanFix())
	})

	t.Run("unloadable is kept", func(t *testing.T) {
		s := bootstrapped(t)
		path := write(t, s.Dir(), "junk.json", "{")
		check := NewSelectionCheck(s, store.NewMemorySelection(path))

		assert.Equal(t, SeverityWarning, check.Run(t.Context()).Status)
		assert.False(t, check.CanFix())
	})
}
