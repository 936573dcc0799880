package backup

import (
	"io/fs"
	"os"

	"github.com/thoreinstein/hsv/internal/errors"
)

// Snapshot backs up the document at path before it is overwritten.
// A path with no file yet needs no backup and returns nil.
func (m *Manager) Snapshot(path, from string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if _, err := m.Backup(path, from); err != nil {
		return errors.Wrapf(err, "creating backup of %s", path)
	}
	return nil
}
