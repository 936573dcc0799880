package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/logging"
	"github.com/thoreinstein/hsv/internal/validator"
)

// ConfigFileInfo describes one document in the directory.
type ConfigFileInfo struct {
	// Name is the file name without its extension.
	Name string
	// Path is the full path of the file.
	Path string
	// State is the document's classification.
	State classify.State
	// Config is the parsed document, nil when State is Broken.
	Config *document.Configuration
	// Err explains a Broken or ValidationFailed state.
	Err error
}

// Selectable reports whether the document may become active.
func (i ConfigFileInfo) Selectable() bool {
	return classify.Selectable(i.State) && i.Config != nil
}

// DisplayName returns the name shown for the document at path.
func DisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListAvailable loads and classifies every regular, non-hidden file in the
// directory, recreating the directory first if it has gone missing. Results
// are in directory order.
func (s *Store) ListAvailable(ctx context.Context) ([]ConfigFileInfo, error) {
	files, err := s.documentPaths()
	if err != nil {
		return nil, err
	}

	infos := make([]ConfigFileInfo, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			infos[i] = s.inspect(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "listing configurations")
	}

	s.logger.Debug("listed configurations", "dir", s.dir, "count", len(infos))
	return infos, nil
}

// Find returns the document named name as ListAvailable would list it.
// Only that file is loaded and classified.
func (s *Store) Find(ctx context.Context, name string) (ConfigFileInfo, error) {
	if err := ctx.Err(); err != nil {
		return ConfigFileInfo{}, err
	}
	files, err := s.documentPaths()
	if err != nil {
		return ConfigFileInfo{}, err
	}
	for _, path := range files {
		if DisplayName(path) == name {
			return s.inspect(path), nil
		}
	}
	return ConfigFileInfo{}, errors.Wrapf(errors.ErrNotFound, "configuration %q", name)
}

// documentPaths returns the regular, non-hidden files of the directory in
// directory order, recreating the directory first if it has gone missing.
func (s *Store) documentPaths() ([]string, error) {
	if _, err := s.ensureDirectory(false); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration directory")
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	return files, nil
}

// inspect loads and classifies one file.
func (s *Store) inspect(path string) ConfigFileInfo {
	cfg, err := s.Load(path)
	if err != nil {
		s.logger.Log(context.Background(), logging.LevelTrace, "configuration not loadable", "path", path, "error", err)
		return ConfigFileInfo{Name: DisplayName(path), Path: path, State: classify.Broken, Err: err}
	}
	return s.classifyLoaded(path, cfg)
}

// classifyLoaded classifies a document that has already been loaded.
// Validation failures are logged here, once per classification.
func (s *Store) classifyLoaded(path string, cfg *document.Configuration) ConfigFileInfo {
	info := ConfigFileInfo{Name: DisplayName(path), Path: path, Config: cfg}

	state, err := s.classifier.Classify(cfg)
	info.State = state
	if err != nil {
		info.Err = errors.Wrapf(err, "configuration %q", info.Name)

		attrs := []any{"name", info.Name, "error", err}
		var issue *validator.Issue
		if errors.As(err, &issue) {
			if threshold, ok := issue.Context["threshold"]; ok {
				attrs = append(attrs, "threshold", threshold)
			}
		}
		s.logger.Warn("configuration failed validation", attrs...)
	}

	if state == classify.Broken {
		info.Config = nil
	}
	return info
}
