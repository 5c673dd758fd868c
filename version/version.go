package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is returned when a string does not match the product
// version format: v<major>.<minor>.<patch>[-<prerelease>][+<build>][ (<hash>)].
var ErrInvalidVersion = errors.New("invalid version string")

// Version is a product version: a semantic version rendered with a leading
// "v". The optional trailing "(<hash>)" segment emitted by dev builds is
// accepted on input and discarded. Values are immutable once constructed.
type Version struct {
	v *semver.Version
}

// New builds a version from its numeric components and an optional
// prerelease tag. The result round-trips through String and Parse.
func New(major, minor, patch uint64, prerelease string) (Version, error) {
	raw := fmt.Sprintf("v%d.%d.%d", major, minor, patch)
	if prerelease != "" {
		raw += "-" + prerelease
	}
	return Parse(raw)
}

// MustNew is like New but panics on error, for use with known-good inputs.
func MustNew(major, minor, patch uint64) Version {
	v, err := New(major, minor, patch, "")
	if err != nil {
		panic(fmt.Sprintf("failed to build version: %v", err))
	}
	return v
}

// Parse parses a product version string, for example "v0.45.0-dev (f01773cb1)".
func Parse(raw string) (Version, error) {
	return parse(raw, false)
}

// ParseRelease parses a product version string after removing the literal
// "-dev" substring from its body, so a development build can be compared
// against its would-be release version. The removal is not anchored to the
// prerelease field: a version legitimately containing "-dev" elsewhere
// would be mangled.
func ParseRelease(raw string) (Version, error) {
	return parse(raw, true)
}

func parse(raw string, dropDevSuffix bool) (Version, error) {
	if !strings.HasPrefix(raw, "v") {
		return Version{}, fmt.Errorf("%w: %q is missing the leading 'v'", ErrInvalidVersion, raw)
	}

	body := raw[1:]

	// A single space separates the version from a parenthesized commit hash.
	// The hash is informational only and discarded.
	if strings.Contains(body, " ") {
		parts := strings.Split(body, " ")
		if len(parts) != 2 || !strings.HasPrefix(parts[1], "(") || !strings.HasSuffix(parts[1], ")") {
			return Version{}, fmt.Errorf("%w: %q has a malformed commit hash segment", ErrInvalidVersion, raw)
		}
		body = parts[0]
	}

	if dropDevSuffix {
		body = strings.ReplaceAll(body, "-dev", "")
	}

	sv, err := semver.StrictNewVersion(body)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, raw, err)
	}

	return Version{v: sv}, nil
}

// TryParse parses a product version string, reporting failure instead of
// returning an error. Useful for best-effort detection of version-like
// strings.
func TryParse(raw string) (Version, bool) {
	v, err := Parse(raw)
	return v, err == nil
}

// TryParseRelease is TryParse with the "-dev" removal of ParseRelease.
func TryParseRelease(raw string) (Version, bool) {
	v, err := ParseRelease(raw)
	return v, err == nil
}

// IsVersionString reports whether raw parses as a product version.
func IsVersionString(raw string) bool {
	_, ok := TryParse(raw)
	return ok
}

// ParseRow parses the first column of the first row of a query result.
func ParseRow(rows [][]string) (Version, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Version{}, fmt.Errorf("failed to parse version from query result: result is empty")
	}
	return Parse(rows[0][0])
}

// FromSemver wraps a plain semantic version.
func FromSemver(sv *semver.Version) Version {
	return Version{v: sv}
}

// Semver returns the underlying semantic version, without the leading "v".
func (v Version) Semver() *semver.Version {
	return v.v
}

// String renders the canonical display form, "v" followed by the semantic
// version. It is the inverse of Parse for any value produced by New or Parse.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return "v" + v.v.String()
}

func (v Version) Major() uint64 {
	return v.v.Major()
}

func (v Version) Minor() uint64 {
	return v.v.Minor()
}

func (v Version) Patch() uint64 {
	return v.v.Patch()
}

func (v Version) Prerelease() string {
	return v.v.Prerelease()
}

// Metadata returns the build metadata, which never participates in ordering.
func (v Version) Metadata() string {
	return v.v.Metadata()
}

// Compare returns -1, 0 or 1 following semantic versioning precedence:
// numeric comparison of major/minor/patch, then prerelease comparison.
// Build metadata is ignored.
func (v Version) Compare(other Version) int {
	return v.v.Compare(other.v)
}

func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}
