package store

import (
	"context"
	"io/fs"
	"os"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/errors"
)

// Select makes info's document active and remembers its path. It does
// nothing when info is not selectable.
//
// A document that needs migration is migrated, written back to info.Path,
// and only then does info take the migrated document with State Compatible.
// If the write fails the selection is abandoned, info is left as it was,
// and the error returned.
func (s *Store) Select(info *ConfigFileInfo) error {
	if info == nil || !info.Selectable() {
		return nil
	}

	if info.State == classify.NeedsMigration {
		from := info.Config.Version.String()
		if err := s.snapshot(info.Path, from); err != nil {
			return err
		}
		cfg := info.Config.Clone()
		applied := s.chain.Migrate(cfg, s.current)
		if err := s.Save(info.Path, cfg); err != nil {
			return err
		}
		s.logger.Info("migrated configuration",
			"name", info.Name, "from", from, "to", s.current.String(), "steps", applied)
		info.Config = cfg
		info.State = classify.Compatible
	}

	s.active.Set(info.Config, info.Path)
	if s.selection != nil {
		if err := s.selection.RememberSelected(info.Path); err != nil {
			return errors.Wrap(err, "remembering selection")
		}
	}
	s.logger.Debug("selected configuration", "name", info.Name, "path", info.Path)
	return nil
}

// SelectByName finds the document named name and selects it. It returns
// errors.ErrNotFound or errors.ErrNotSelectable (with the reason) when the
// document cannot be selected.
func (s *Store) SelectByName(ctx context.Context, name string) (ConfigFileInfo, error) {
	info, err := s.Find(ctx, name)
	if err != nil {
		return ConfigFileInfo{}, err
	}

	if !info.Selectable() {
		cause := info.Err
		if cause == nil {
			cause = errors.Newf("configuration %q is %s", name, info.State)
		}
		return info, errors.Mark(cause, errors.ErrNotSelectable)
	}

	if err := s.Select(&info); err != nil {
		return info, err
	}
	return info, nil
}

// Unselect clears the active document and forgets the remembered path.
func (s *Store) Unselect() error {
	s.active.Clear()
	if s.selection == nil {
		return nil
	}
	if err := s.selection.RememberSelected(""); err != nil {
		return errors.Wrap(err, "forgetting selection")
	}
	return nil
}

// Migrate upgrades the document named name and, unless dryRun is set,
// writes it back. It returns the migrated document and the steps applied.
// Only documents in the NeedsMigration state can be migrated.
func (s *Store) Migrate(ctx context.Context, name string, dryRun bool) (*document.Configuration, []string, error) {
	info, err := s.Find(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if info.State != classify.NeedsMigration {
		cause := info.Err
		if cause == nil {
			cause = errors.Newf("configuration %q is %s", name, info.State)
		}
		return nil, nil, errors.Mark(cause, errors.ErrNotSelectable)
	}

	cfg := info.Config.Clone()
	applied := s.chain.Migrate(cfg, s.current)
	if dryRun {
		return cfg, applied, nil
	}

	if err := s.snapshot(info.Path, info.Config.Version.String()); err != nil {
		return nil, nil, err
	}
	if err := s.Save(info.Path, cfg); err != nil {
		return nil, nil, err
	}
	// Keep the active copy in step with the file.
	if s.active.Path() == info.Path {
		s.active.Set(cfg, info.Path)
	}
	s.logger.Info("migrated configuration", "name", name, "steps", applied)
	return cfg, applied, nil
}

// snapshot copies the file at path before a migration rewrites it.
func (s *Store) snapshot(path, from string) error {
	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.Snapshot(path, from); err != nil {
		s.logger.Error("failed to back up configuration", "path", path, "error", err)
		return err
	}
	s.logger.Debug("backed up configuration", "path", path, "from", from)
	return nil
}

// Initialize runs the startup sequence: bootstrap the directory, then
// reactivate the remembered document.
//
// A remembered file that no longer exists is forgotten. One that exists
// but fails to load is kept remembered and nothing is activated.
func (s *Store) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Bootstrap(); err != nil {
		return err
	}
	if s.selection == nil {
		return nil
	}

	path := s.selection.SelectedPath()
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("remembered configuration no longer exists", "path", path)
		return errors.Wrap(s.selection.RememberSelected(""), "forgetting selection")
	}

	cfg, err := s.Load(path)
	if err != nil {
		s.logger.Warn("remembered configuration could not be loaded", "path", path, "error", err)
		return nil
	}

	info := s.classifyLoaded(path, cfg)
	return s.Select(&info)
}
