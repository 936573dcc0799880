package doctor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/store"
)

// SettingsCheck validates the settings file.
type SettingsCheck struct {
	path string
	load func() (*config.Config, error)
}

var _ Check = (*SettingsCheck)(nil)

// NewSettingsCheck checks the settings at path as returned by load.
func NewSettingsCheck(path string, load func() (*config.Config, error)) *SettingsCheck {
	return &SettingsCheck{path: path, load: load}
}

func (c *SettingsCheck) Name() string     { return "settings" }
func (c *SettingsCheck) Category() string { return "settings" }

// Run loads and validates the settings.
func (c *SettingsCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		result.Status = SeverityInfo
		result.Message = "no settings file, using defaults"
		return result
	}

	cfg, err := c.load()
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("settings could not be read: %v", err)
		result.FixHint = "Fix or remove " + c.path
		return result
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid setting(s)", len(errs))
		result.Details["errors"] = msgs
		result.FixHint = "Run: hsv settings set <key> <value>"
		return result
	}

	result.Status = SeverityPass
	result.Message = "settings are valid"
	return result
}

// DirectoryCheck verifies the configuration directory exists and is private
// to the user. A missing directory is recreated with the default document
// by Fix; a world-writable one is restricted.
type DirectoryCheck struct {
	store *store.Store

	missing   bool
	perm      fs.FileMode
	needChmod bool
}

var _ Check = (*DirectoryCheck)(nil)
var _ Fixer = (*DirectoryCheck)(nil)

// NewDirectoryCheck checks s's directory.
func NewDirectoryCheck(s *store.Store) *DirectoryCheck {
	return &DirectoryCheck{store: s}
}

func (c *DirectoryCheck) Name() string     { return "directory" }
func (c *DirectoryCheck) Category() string { return "filesystem" }

// Run inspects the directory.
func (c *DirectoryCheck) Run(context.Context) *CheckResult {
	c.missing, c.needChmod = false, false
	dir := c.store.Dir()
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": dir},
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.missing = true
		result.Status = SeverityWarning
		result.Message = "configuration directory does not exist"
		result.Fixable = true
		result.FixHint = "Run: hsv init"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot stat configuration directory: %v", err)
		return result
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = "configuration directory path is not a directory"
		result.FixHint = "Move the file away or set configs_dir"
		return result
	}

	c.perm = info.Mode().Perm()
	result.Details["permissions"] = fmt.Sprintf("%04o", c.perm)
	if runtime.GOOS != "windows" && c.perm&0o002 != 0 {
		c.needChmod = true
		result.Status = SeverityWarning
		result.Message = "configuration directory is world-writable"
		result.Fixable = true
		result.FixHint = fmt.Sprintf("chmod %04o %s", c.perm&^0o022, dir)
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration directory is usable"
	return result
}

// CanFix reports whether the last Run found a fixable problem.
func (c *DirectoryCheck) CanFix() bool {
	return c.missing || c.needChmod
}

// Fix recreates a missing directory or removes group and world write access.
func (c *DirectoryCheck) Fix() []FixResult {
	dir := c.store.Dir()
	switch {
	case c.missing:
		if err := c.store.Bootstrap(); err != nil {
			return []FixResult{{Path: dir, Description: "failed to create directory", Error: err}}
		}
		c.missing = false
		return []FixResult{{Path: dir, Fixed: true, Description: "created directory with default document"}}
	case c.needChmod:
		target := c.perm &^ 0o022
		if err := os.Chmod(dir, target); err != nil {
			return []FixResult{{Path: dir, Description: fmt.Sprintf("failed to chmod %04o", target), Error: errors.Wrapf(err, "chmod %s", dir)}}
		}
		c.needChmod = false
		return []FixResult{{Path: dir, Fixed: true, Description: fmt.Sprintf("chmod %04o", target)}}
	}
	return nil
}

// DocumentsCheck classifies every document and warns about unusable ones.
type DocumentsCheck struct {
	store *store.Store
}

var _ Check = (*DocumentsCheck)(nil)

// NewDocumentsCheck checks the documents in s.
func NewDocumentsCheck(s *store.Store) *DocumentsCheck {
	return &DocumentsCheck{store: s}
}

func (c *DocumentsCheck) Name() string     { return "documents" }
func (c *DocumentsCheck) Category() string { return "documents" }

// Run lists and classifies the documents.
func (c *DocumentsCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if _, err := os.Stat(c.store.Dir()); err != nil {
		result.Status = SeverityInfo
		result.Message = "skipped, configuration directory is not available"
		return result
	}

	infos, err := c.store.ListAvailable(ctx)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("listing documents: %v", err)
		return result
	}

	counts := make(map[string]int)
	unusable := make(map[string]string)
	selectable := 0
	for _, info := range infos {
		counts[info.State.String()]++
		if info.Selectable() {
			selectable++
			continue
		}
		unusable[info.Name] = info.State.String()
	}
	result.Details = map[string]any{"states": counts}

	switch {
	case len(infos) == 0:
		result.Status = SeverityWarning
		result.Message = "no documents"
		result.FixHint = "Add a document, or remove the empty directory and run: hsv init"
	case len(unusable) > 0:
		names := make([]string, 0, len(unusable))
		for name := range unusable {
			names = append(names, name)
		}
		slices.Sort(names)
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d of %d documents cannot be selected: %v", len(unusable), len(infos), names)
		result.Details["unusable"] = unusable
		result.FixHint = "Run: hsv validate <name>"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d documents, all selectable", selectable)
	}
	return result
}

// SelectionCheck verifies the remembered document still exists and can be
// selected. Fix forgets a selection that cannot be restored.
type SelectionCheck struct {
	store     *store.Store
	selection store.SelectionMemory

	stale bool
}

var _ Check = (*SelectionCheck)(nil)
var _ Fixer = (*SelectionCheck)(nil)

// NewSelectionCheck checks the path remembered in sel against s.
func NewSelectionCheck(s *store.Store, sel store.SelectionMemory) *SelectionCheck {
	return &SelectionCheck{store: s, selection: sel}
}

func (c *SelectionCheck) Name() string     { return "selection" }
func (c *SelectionCheck) Category() string { return "documents" }

// Run loads and classifies the remembered document.
func (c *SelectionCheck) Run(context.Context) *CheckResult {
	c.stale = false
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path := c.selection.SelectedPath()
	if path == "" {
		result.Status = SeverityInfo
		result.Message = "no document selected"
		return result
	}
	result.Details = map[string]any{"path": path}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		c.stale = true
		result.Status = SeverityWarning
		result.Message = "selected document no longer exists"
		result.Fixable = true
		result.FixHint = "Run: hsv select"
		return result
	}

	cfg, err := c.store.Load(path)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("selected document cannot be loaded: %v", err)
		result.FixHint = "Run: hsv select"
		return result
	}

	state, _ := c.store.Classifier().Classify(cfg)
	result.Details["state"] = state.String()
	if !classify.Selectable(state) {
		c.stale = true
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("selected document is %s", state)
		result.Fixable = true
		result.FixHint = "Run: hsv select"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s is selected", store.DisplayName(path))
	return result
}

// CanFix reports whether the last Run found a selection to forget.
func (c *SelectionCheck) CanFix() bool {
	return c.stale
}

// Fix forgets the remembered selection.
func (c *SelectionCheck) Fix() []FixResult {
	if !c.stale {
		return nil
	}
	path := c.selection.SelectedPath()
	if err := c.selection.RememberSelected(""); err != nil {
		return []FixResult{{Path: path, Description: "failed to forget selection", Error: err}}
	}
	c.stale = false
	return []FixResult{{Path: path, Fixed: true, Description: "forgot selection"}}
}
