// Package classify decides whether a configuration document can be used by
// the running release, and whether it must be migrated first.
package classify

import (
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/migration"
	"github.com/thoreinstein/hsv/internal/version"
)

// State is the compatibility classification of a document.
type State int

const (
	// Broken documents could not be read or carry no version.
	Broken State = iota
	// NewerVersion documents were written by a newer release.
	NewerVersion
	// Incompatible documents are older than any migration can upgrade.
	Incompatible
	// ValidationFailed documents violate a judgment list invariant.
	ValidationFailed
	// NeedsMigration documents are usable once migrated.
	NeedsMigration
	// Compatible documents are usable as-is.
	Compatible
)

func (s State) String() string {
	switch s {
	case Broken:
		return "broken"
	case NewerVersion:
		return "newer-version"
	case Incompatible:
		return "incompatible"
	case ValidationFailed:
		return "validation-failed"
	case NeedsMigration:
		return "needs-migration"
	case Compatible:
		return "compatible"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SelectableStates returns the states a document may be activated from.
func SelectableStates() []State {
	return []State{NeedsMigration, Compatible}
}

// Selectable reports whether a document in state s may become active.
func Selectable(s State) bool {
	return s == NeedsMigration || s == Compatible
}

// Bounds is the range of document versions the migration chain covers.
type Bounds struct {
	// MinimumMigratable is the oldest version that can be upgraded.
	MinimumMigratable version.Version
	// MaximumMigrationNeeded is the newest version that still needs a step.
	MaximumMigrationNeeded version.Version
}

// Classifier classifies documents against the running release.
type Classifier struct {
	Current version.Version
	Bounds  Bounds
}

// New returns a classifier for release current whose bounds come from chain.
func New(current version.Version, chain *migration.Chain) Classifier {
	return Classifier{
		Current: current,
		Bounds: Bounds{
			MinimumMigratable:      chain.MinimumMigratableVersion(),
			MaximumMigrationNeeded: chain.MaximumMigrationNeededVersion(),
		},
	}
}

// Classify returns the state of cfg. For ValidationFailed it also returns the
// violation found.
//
// Validation canonicalizes the judgment and segment lists of cfg in place,
// so a selectable document leaves this call sorted highest threshold first.
func (c Classifier) Classify(cfg *document.Configuration) (State, error) {
	switch {
	case cfg == nil || cfg.Version == nil:
		return Broken, nil
	case version.Compare(*cfg.Version, c.Current) > 0:
		return NewerVersion, nil
	case version.Compare(*cfg.Version, c.Bounds.MinimumMigratable) < 0:
		return Incompatible, nil
	}

	if err := Canonicalize(cfg); err != nil {
		return ValidationFailed, err
	}

	if version.Compare(*cfg.Version, c.Bounds.MaximumMigrationNeeded) <= 0 {
		return NeedsMigration, nil
	}
	return Compatible, nil
}

// Canonicalize validates the four threshold lists of cfg and, if all pass,
// replaces them with their canonical order. On failure cfg is unchanged.
func Canonicalize(cfg *document.Configuration) error {
	judgments, err := judgment.CanonicalizeJudgments(cfg.Judgments)
	if err != nil {
		return errors.Wrap(err, "judgments")
	}

	lists := []struct {
		field string
		list  *[]judgment.Segment
	}{
		{"beforeCutAngleJudgments", &cfg.BeforeCutAngleJudgments},
		{"accuracyJudgments", &cfg.AccuracyJudgments},
		{"afterCutAngleJudgments", &cfg.AfterCutAngleJudgments},
	}
	canonical := make([][]judgment.Segment, len(lists))
	for i, l := range lists {
		segs, err := judgment.CanonicalizeSegments(l.field, *l.list)
		if err != nil {
			return errors.Wrap(err, l.field)
		}
		canonical[i] = segs
	}

	cfg.Judgments = judgments
	for i, l := range lists {
		*l.list = canonical[i]
	}
	return nil
}
