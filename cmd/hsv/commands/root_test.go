package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()
	t.Setenv("HSV_DEBUG", "")

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"HSV_DEBUG=1", "1", slog.LevelDebug},
		{"HSV_DEBUG=true", "true", slog.LevelDebug},
		{"HSV_DEBUG=2", "2", logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("HSV_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			if !slog.Default().Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity, quiet = 1, true
	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	if code := errors.ExitCode(err); code != errors.ExitUser {
		t.Errorf("ExitCode = %d, want %d", code, errors.ExitUser)
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	origLogFile := logFile
	defer func() { logFile = origLogFile }()

	logFile = filepath.Join(t.TempDir(), "hsv.log")
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetErr(nil)

	require.NoError(t, setupLogging(rootCmd))
	slog.Default().Warn("configuration directory is missing, recreating it", "dir", "/configs")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dir":"/configs"`)
	assert.Contains(t, stderr.String(), "dir=/configs")
}

func TestSetupLogging_Color(t *testing.T) {
	origColor, origNoColor := colorFlag, color.NoColor
	defer func() { colorFlag, color.NoColor = origColor, origNoColor }()

	colorFlag = "never"
	require.NoError(t, setupLogging(rootCmd))
	assert.True(t, color.NoColor)

	colorFlag = "always"
	require.NoError(t, setupLogging(rootCmd))
	assert.False(t, color.NoColor)

	colorFlag = "sometimes"
	assert.Equal(t, errors.ExitUser, errors.ExitCode(setupLogging(rootCmd)))
}

func TestCheckConfig(t *testing.T) {
	orig := configLoadErr
	defer func() { configLoadErr = orig }()

	configLoadErr = errors.New("bad settings")

	if err := checkConfig(listCmd, nil); errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("list with broken settings: got %v", err)
	}
	for _, c := range []*cobra.Command{versionCmd, settingsCmd, settingsSetCmd, doctorCmd} {
		if err := checkConfig(c, nil); err != nil {
			t.Errorf("%s should run with broken settings, got %v", c.Name(), err)
		}
	}

	configLoadErr = nil
	if err := checkConfig(listCmd, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
