// Package fileutil writes documents and settings through a temp file and
// rename, and reads them with a size limit.
package fileutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/hsv/internal/errors"
)

const (
	// DocumentPerm is used for configuration documents, which the game reads.
	DocumentPerm os.FileMode = 0o644
	// SettingsPerm is used for the settings file.
	SettingsPerm os.FileMode = 0o600
)

// AtomicWrite replaces path with whatever write produces. The new contents
// become visible only once write and the flush to disk have succeeded;
// otherwise path is left as it was. The parent directory must exist.
func AtomicWrite(path string, perm os.FileMode, write func(io.Writer) error) error {
	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hsv-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	done := false
	defer func() {
		if !done {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	done = true
	return nil
}

// AtomicWriteFile is AtomicWrite for a byte slice.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicWrite(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return errors.Wrap(err, "writing temp file")
	})
}

// AtomicWriteJSON writes v as 2-space indented JSON ending in a newline,
// with DocumentPerm.
func AtomicWriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "marshaling JSON")
	}
	return AtomicWriteFile(path, buf.Bytes(), DocumentPerm)
}

// AtomicWriteYAML writes v as YAML with SettingsPerm.
func AtomicWriteYAML(path string, v any) error {
	data, err := marshalYAML(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, SettingsPerm)
}

// marshalYAML converts the panic yaml.Marshal raises for unsupported types
// into an error.
func marshalYAML(v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()
	data, err = yaml.Marshal(v)
	return data, errors.Wrap(err, "marshaling YAML")
}
