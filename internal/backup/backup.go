package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/paths"
	"github.com/thoreinstein/hsv/pkg/fileutil"
)

// Manager creates, lists, restores and prunes document backups.
type Manager struct {
	rootDir        string
	retentionCount int
	release        string
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups kept per document.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithRelease sets the release recorded in new manifests.
func WithRelease(v string) Option {
	return func(m *Manager) {
		m.release = v
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// DefaultDir returns <DataHome>/hsv/backups.
func DefaultDir() string {
	return filepath.Join(paths.DataHome(), paths.AppName, "backups")
}

// NewManager returns a Manager rooted at DefaultDir unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        DefaultDir(),
		retentionCount: DefaultRetentionCount,
		release:        "dev",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the root backup directory.
func (m *Manager) Dir() string {
	return m.rootDir
}

// Backup copies the document at path into a new backup and prunes the
// document's older backups. from is recorded as the pre-change version.
func (m *Manager) Backup(path, from string) (*Manifest, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	created := m.now().UTC()
	name := filepath.Base(abs)
	id := created.Format(idLayout)
	dir := m.backupPath(name, id)

	if err := paths.EnsureDir(dir, 0); err != nil {
		return nil, errors.Wrap(err, "creating backup directory")
	}

	hash, mode, err := copyFile(abs, filepath.Join(dir, name))
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "backing up %s", path)
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Document:    name,
		FromVersion: from,
		File: File{
			OriginalPath: abs,
			SHA256Hash:   hash,
			Mode:         mode,
		},
		HSVVersion: m.release,
		ID:         id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(name, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning backups")
	}
	return manifest, nil
}

// Restore writes the backed up copy back to its original path after
// verifying its hash.
func (m *Manager) Restore(name, id string) (*Manifest, error) {
	manifest, err := m.Get(name, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(name, id), name))
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", id)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != manifest.File.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s of %s", id, name)
	}

	if err := fileutil.AtomicWriteFile(manifest.File.OriginalPath, data, manifest.File.Mode.Perm()); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", manifest.File.OriginalPath)
	}
	return manifest, nil
}

// List returns the document's backups, newest first.
func (m *Manager) List(name string) ([]Manifest, error) {
	if name == "" {
		return nil, errors.New("document name is required")
	}

	entries, err := os.ReadDir(filepath.Join(m.rootDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(name, entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return manifests, nil
}

// Prune removes all but the newest keep backups of the document.
func (m *Manager) Prune(name string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(name)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(name, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(name, id string) (*Manifest, error) {
	if name == "" || id == "" {
		return nil, errors.New("document name and backup ID are required")
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(name, id), manifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s of %s", id, name)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = id
	return &manifest, nil
}

func (m *Manager) backupPath(name, id string) string {
	return filepath.Join(m.rootDir, name, id)
}

// copyFile copies src to dst, keeping src's permissions, and returns the
// hex SHA-256 of the contents.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	if !info.Mode().IsRegular() {
		return "", 0, errors.Newf("%s is not a regular file", src)
	}
	mode = info.Mode().Perm()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}
