package store

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/logging"
	"github.com/thoreinstein/hsv/internal/migration"
	"github.com/thoreinstein/hsv/internal/paths"
	"github.com/thoreinstein/hsv/internal/version"
	"github.com/thoreinstein/hsv/pkg/fileutil"
)

// Load failure classes. Both are marks: test with errors.Is.
var (
	// ErrParse marks a document whose contents are not a valid document.
	ErrParse = errors.New("malformed configuration document")
	// ErrIO marks a document that could not be read.
	ErrIO = errors.New("unreadable configuration document")
)

// Defaults for New.
const (
	DefaultCacheSize   = 64
	DefaultConcurrency = 4
)

// Store owns one documents directory.
//
// Select, Unselect, and Save assume a single writer. Listing and loading
// may run concurrently with each other.
type Store struct {
	dir     string
	current version.Version

	logger      *slog.Logger
	chain       *migration.Chain
	classifier  classify.Classifier
	selection   SelectionMemory
	snapshots   Snapshotter
	active      *Active
	cache       *docCache
	cacheSize   int
	concurrency int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithChain replaces the migration chain, which also moves the
// classification bounds.
func WithChain(chain *migration.Chain) Option {
	return func(s *Store) {
		if chain != nil {
			s.chain = chain
		}
	}
}

// WithSelection sets where the active document path is remembered.
// Without it nothing is remembered across runs.
func WithSelection(sel SelectionMemory) Option {
	return func(s *Store) {
		s.selection = sel
	}
}

// WithSnapshots sets where documents are copied before a migration
// rewrites them. Without it no copies are kept.
func WithSnapshots(sn Snapshotter) Option {
	return func(s *Store) {
		s.snapshots = sn
	}
}

// WithActive shares an existing active holder, e.g. with a renderer.
func WithActive(a *Active) Option {
	return func(s *Store) {
		if a != nil {
			s.active = a
		}
	}
}

// WithCacheSize sets how many parsed documents are kept. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(s *Store) {
		s.cacheSize = n
	}
}

// WithConcurrency bounds how many documents ListAvailable loads at once.
func WithConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New returns a store for dir that classifies documents against the running
// release current. It does not touch the filesystem.
func New(dir string, current version.Version, opts ...Option) *Store {
	s := &Store{
		dir:         dir,
		current:     current,
		logger:      logging.NewDiscard(),
		chain:       migration.Default(),
		active:      &Active{},
		cacheSize:   DefaultCacheSize,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.classifier = classify.New(current, s.chain)
	s.cache = newDocCache(s.cacheSize)
	return s
}

// Dir returns the documents directory.
func (s *Store) Dir() string {
	return s.dir
}

// Current returns the release version documents are classified against.
func (s *Store) Current() version.Version {
	return s.current
}

// Active returns the holder of the active document.
func (s *Store) Active() *Active {
	return s.active
}

// Chain returns the migration chain.
func (s *Store) Chain() *migration.Chain {
	return s.chain
}

// Classifier returns the classifier the store uses.
func (s *Store) Classifier() classify.Classifier {
	return s.classifier
}

// Bootstrap creates the documents directory and writes the default document
// into it. If the directory already exists nothing is written.
func (s *Store) Bootstrap() error {
	_, err := s.ensureDirectory(true)
	return err
}

// ensureDirectory creates the directory and its default document if the
// directory is missing. Outside startup a missing directory means it was
// removed while running, which is logged.
func (s *Store) ensureDirectory(startup bool) (created bool, err error) {
	info, err := os.Stat(s.dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, errors.Newf("%s exists and is not a directory", s.dir)
	case !errors.Is(err, fs.ErrNotExist):
		return false, errors.Wrap(err, "checking configuration directory")
	}

	if !startup {
		s.logger.Warn("configuration directory is missing, recreating it", "dir", s.dir)
	}

	if err := paths.EnsureDir(s.dir, 0); err != nil {
		s.logger.Error("failed to create configuration directory", "dir", s.dir, "error", err)
		return false, errors.Wrap(err, "creating configuration directory")
	}
	s.logger.Info("created configuration directory", "dir", s.dir)

	def := document.Default(s.current)
	if err := s.Save(filepath.Join(s.dir, document.DefaultFileName), def); err != nil {
		return true, err
	}
	return true, nil
}

// Load reads and parses the document at path. Failures are marked with
// ErrIO or ErrParse. The returned document belongs to the caller.
func (s *Store) Load(path string) (*document.Configuration, error) {
	if info, err := os.Stat(path); err == nil {
		if cfg, ok := s.cache.get(path, info); ok {
			return cfg, nil
		}
	}

	data, info, err := fileutil.ReadFileInfo(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "loading %s", path), ErrIO)
	}

	var cfg document.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parsing %s", path), ErrParse)
	}

	s.cache.add(path, info, &cfg)
	return &cfg, nil
}

// Save writes cfg to path as indented JSON, replacing any existing file
// atomically.
func (s *Store) Save(path string, cfg *document.Configuration) error {
	s.cache.remove(path)
	if err := fileutil.AtomicWriteJSON(path, cfg); err != nil {
		s.logger.Error("failed to save configuration", "path", path, "error", err)
		return errors.Wrapf(err, "saving %s", path)
	}
	s.logger.Debug("saved configuration", "path", path)
	return nil
}
