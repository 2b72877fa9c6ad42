package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// ErrInvalidVersion is returned when a string cannot be read as a dotted version
var ErrInvalidVersion = errors.New("invalid version")

var runtimeRegex = regexp.MustCompile(`(\d+)(?:\.(\d+))?`)

// Version is a parsed dotted-integer version such as 2.479.1.
// Segments are padded with zeros to at least three, so 2.400 equals 2.400.0.
type Version struct {
	v *goversion.Version
}

// String returns the version as it was parsed
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// Segments returns the numeric components, padded to at least three
func (v Version) Segments() []int {
	if v.v == nil {
		return nil
	}
	return v.v.Segments()
}

// Prerelease returns the qualifier after '-' (2.479-rc1 has "rc1")
func (v Version) Prerelease() string {
	if v.v == nil {
		return ""
	}
	return v.v.Prerelease()
}

// Parse reads a dotted-integer version. A leading "v" and surrounding
// whitespace are accepted; build metadata after '+' is kept but ignored
// when ordering.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrInvalidVersion)
	}

	v, err := goversion.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return Version{v: v}, nil
}

// MustParse is like Parse but panics on error. Intended for static tables.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders two parsed versions component by component.
// Missing trailing components count as zero and a pre-release sorts before
// the same release without one. The zero Version sorts before everything.
func (v Version) Compare(other Version) int {
	switch {
	case v.v == nil && other.v == nil:
		return 0
	case v.v == nil:
		return -1
	case other.v == nil:
		return 1
	}
	return v.v.Compare(other.v)
}

// Compare parses a and b and orders them. It returns an error if either side
// is not a valid version.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// ParseRuntime extracts a runtime major version from strings like "21",
// "Java 11", "JDK 17" or the legacy "1.8" form.
func ParseRuntime(s string) (int, error) {
	m := runtimeRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: no runtime version in %q", ErrInvalidVersion, s)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	// 1.x is the pre-9 naming scheme
	if major == 1 && m[2] != "" {
		minor, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		return minor, nil
	}

	return major, nil
}
