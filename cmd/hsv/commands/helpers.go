package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/cmd"
	"github.com/thoreinstein/hsv/internal/backup"
	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/logging"
	"github.com/thoreinstein/hsv/internal/paths"
	"github.com/thoreinstein/hsv/internal/store"
	"github.com/thoreinstein/hsv/internal/version"
)

// selectionMemory is where commands remember the active document.
// Tests replace it with an in-memory store.SelectionMemory.
var selectionMemory store.SelectionMemory = config.Selection{}

// backupDir returns where pre-migration copies are kept.
// Tests point it at a temporary directory.
var backupDir = backup.DefaultDir

func newBackups() *backup.Manager {
	return backup.NewManager(
		backup.WithBackupDir(backupDir()),
		backup.WithRelease(cmd.Version),
	)
}

// currentVersion parses the build's release version.
func currentVersion() (version.Version, error) {
	v, err := version.Parse(cmd.Version)
	if err != nil {
		return version.Version{}, errors.NewSystemError(
			errors.Wrapf(err, "build version %q", cmd.Version),
			"Rebuild with -ldflags \"-X github.com/thoreinstein/hsv/cmd.Version=MAJOR.MINOR.PATCH\"")
	}
	return v, nil
}

// configsDir resolves the documents directory: --configs-dir, then settings.
func configsDir() (string, error) {
	if configsDirFlag != "" {
		return paths.Expand(configsDirFlag)
	}
	return config.ConfigsDir()
}

// newStore builds the store commands operate on, logging through the
// command's logger.
func newStore(c *cobra.Command) (*store.Store, error) {
	current, err := currentVersion()
	if err != nil {
		return nil, err
	}
	dir, err := configsDir()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return store.New(dir, current,
		store.WithLogger(logging.FromContext(c.Context())),
		store.WithSelection(selectionMemory),
		store.WithSnapshots(newBackups()),
	), nil
}

// userError converts store lookup failures into ExitErrors with a hint.
func userError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrNotFound):
		return errors.NewUserError(err, "Run: hsv list")
	case errors.Is(err, errors.ErrNotSelectable):
		return errors.NewUserError(err, "Run: hsv validate <name> for details")
	default:
		return errors.NewSystemError(err, "")
	}
}
