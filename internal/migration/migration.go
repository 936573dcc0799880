// Package migration upgrades configuration documents written by older
// releases to the current document shape.
//
// A [Chain] is an ordered list of [Step] records keyed by the release that
// introduced each change. Migrating a document runs every step keyed at or
// above the document's version, lowest first, then stamps the document with
// the running release's version. Steps must therefore tolerate documents
// that already carry some of the newer shape.
package migration

import (
	"fmt"
	"slices"

	"github.com/thoreinstein/hsv/internal/document"
	"github.com/thoreinstein/hsv/internal/judgment"
	"github.com/thoreinstein/hsv/internal/version"
)

// Step is a single structural upgrade.
type Step struct {
	// Version is the release whose document shape this step produces.
	Version version.Version

	// Name describes the step in logs.
	Name string

	// Apply rewrites the document in place. The result is reserved for
	// signalling failure; the chain currently proceeds regardless.
	Apply func(cfg *document.Configuration) bool
}

// Chain is an immutable, version-ordered list of steps.
type Chain struct {
	steps []Step
}

// NewChain returns a chain of steps sorted by version. It panics if two steps
// share a version or if no steps are given; both are programming errors.
func NewChain(steps ...Step) *Chain {
	if len(steps) == 0 {
		panic("migration: chain needs at least one step")
	}

	sorted := slices.Clone(steps)
	slices.SortFunc(sorted, func(a, b Step) int {
		return version.Compare(a.Version, b.Version)
	})
	for i := 1; i < len(sorted); i++ {
		if version.Compare(sorted[i-1].Version, sorted[i].Version) == 0 {
			panic(fmt.Sprintf("migration: duplicate step for version %s", sorted[i].Version))
		}
	}

	return &Chain{steps: sorted}
}

// Steps returns a copy of the chain's steps in ascending version order.
func (c *Chain) Steps() []Step {
	return slices.Clone(c.steps)
}

// MinimumMigratableVersion is the oldest document version the chain can
// upgrade. Older documents are incompatible.
func (c *Chain) MinimumMigratableVersion() version.Version {
	return c.steps[0].Version
}

// MaximumMigrationNeededVersion is the newest document version that still
// needs at least one step.
func (c *Chain) MaximumMigrationNeededVersion() version.Version {
	return c.steps[len(c.steps)-1].Version
}

// Pending returns the steps that would run for a document at version from.
func (c *Chain) Pending(from version.Version) []Step {
	i, _ := slices.BinarySearchFunc(c.steps, from, func(s Step, v version.Version) int {
		return version.Compare(s.Version, v)
	})
	return slices.Clone(c.steps[i:])
}

// Migrate applies every pending step to cfg and sets its version to current.
// It returns the names of the steps applied. A document without a version
// is left untouched.
//
// Steps may renumber thresholds, so when any step ran the four lists are
// sorted highest first again and the top judgment's fade is cleared. They
// are not revalidated.
func (c *Chain) Migrate(cfg *document.Configuration, current version.Version) []string {
	if cfg == nil || cfg.Version == nil {
		return nil
	}

	pending := c.Pending(*cfg.Version)
	applied := make([]string, 0, len(pending))
	for _, step := range pending {
		// The result is ignored: steps are best-effort upgrades.
		_ = step.Apply(cfg)
		applied = append(applied, step.Name)
	}
	if len(applied) > 0 {
		resort(cfg)
	}

	v := current
	cfg.Version = &v
	return applied
}

func resort(cfg *document.Configuration) {
	judgment.SortJudgments(cfg.Judgments)
	if len(cfg.Judgments) > 0 {
		cfg.Judgments[0].Fade = false
	}
	judgment.SortSegments(cfg.BeforeCutAngleJudgments)
	judgment.SortSegments(cfg.AccuracyJudgments)
	judgment.SortSegments(cfg.AfterCutAngleJudgments)
}
