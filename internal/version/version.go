// Package version implements the semantic version triple used to gate
// document compatibility and migrations.
package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidVersion indicates a version string is not of the form major.minor.patch.
var ErrInvalidVersion = errors.New("invalid version")

// Version is a major.minor.patch triple. The zero value is 0.0.0.
type Version struct {
	Major int
	Minor int
	Patch int
}

// New returns the version major.minor.patch.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses a "major.minor.patch" string. A leading "v" is accepted.
// Pre-release and build suffixes are not.
func Parse(s string) (Version, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, errors.Wrapf(ErrInvalidVersion, "%q", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p[0] == '+' {
			return Version{}, errors.Wrapf(ErrInvalidVersion, "%q", s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is like Parse but panics on malformed input.
// Use it for compile-time constants only.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1 if a < b, 0 if a == b, and +1 if a > b.
// Ordering is lexicographic over (major, minor, patch).
func Compare(a, b Version) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	return cmp.Compare(a.Patch, b.Patch)
}

// Compare compares v with other. See the package-level Compare.
func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// Min returns the smallest of vs. ok is false if vs is empty.
func Min(vs ...Version) (min Version, ok bool) {
	for i, v := range vs {
		if i == 0 || Compare(v, min) < 0 {
			min = v
		}
	}
	return min, len(vs) > 0
}

// Max returns the largest of vs. ok is false if vs is empty.
func Max(vs ...Version) (max Version, ok bool) {
	for i, v := range vs {
		if i == 0 || Compare(v, max) > 0 {
			max = v
		}
	}
	return max, len(vs) > 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
