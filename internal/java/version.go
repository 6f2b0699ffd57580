package java

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// RuntimeVersion is the result of probing a java executable
type RuntimeVersion struct {
	Version      string `json:"version"`       // Raw version token (e.g., "17.0.1", "1.8.0_322")
	Path         string `json:"path"`          // Executable that was probed
	MajorVersion int    `json:"major_version"` // Feature release, 8 for legacy 1.8 strings
}

// Installation represents a Java runtime found on disk
type Installation struct {
	Version  string // Version string (e.g., "17.0.1", "1.8.0_322")
	Major    int    // Major version, 0 when unknown
	Path     string // Full path to the java executable
	Home     string // Directory the runtime was found in
	Verified bool   // Whether the version came from running the executable
}

const (
	numericVersionPattern = `(\d+)\.(\d+)\.(\d+)(?:_(\d+))?`
	versionOutputPattern  = `version\s+"([^"]+)"`
)

var defaultProbe = NewProbe()

// ExtractMajorVersion returns the major version of a Java version string.
// Legacy "1.x" strings report x, so "1.8.0_291" is 8.
func ExtractMajorVersion(version string) (int, error) {
	return defaultProbe.ExtractMajorVersion(version)
}

func extractMajorVersion(re *regexp.Regexp, version string) (int, error) {
	if m := re.FindStringSubmatch(version); m != nil {
		first, _ := strconv.Atoi(m[1])
		if first == 1 {
			second, _ := strconv.Atoi(m[2])
			return second, nil
		}
		return first, nil
	}

	head, _, _ := strings.Cut(strings.TrimSpace(version), ".")
	major, err := strconv.Atoi(head)
	if err != nil || major <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrVersionUnparseable, version)
	}
	return major, nil
}

// CompareVersions orders two Java version strings, returning -1, 0 or 1.
// Legacy "1.8.0_291" compares as 8.0.291.
func CompareVersions(a, b string) int {
	return defaultProbe.CompareVersions(a, b)
}

// CompareVersions is the package-level CompareVersions using this probe's patterns
func (p *Probe) CompareVersions(a, b string) int {
	va, errA := toSemver(p.numericVersion, a)
	vb, errB := toSemver(p.numericVersion, b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}

	// Fall back to the major version, then plain text
	ma, _ := p.ExtractMajorVersion(a)
	mb, _ := p.ExtractMajorVersion(b)
	switch {
	case ma < mb:
		return -1
	case ma > mb:
		return 1
	}
	return strings.Compare(a, b)
}

func toSemver(re *regexp.Regexp, version string) (*semver.Version, error) {
	v := strings.TrimSpace(version)
	if m := re.FindStringSubmatch(v); m != nil && m[1] == "1" {
		patch := m[3]
		if m[4] != "" {
			patch = m[4]
		}
		v = fmt.Sprintf("%s.%s.%s", m[2], m[3], patch)
	}
	return semver.NewVersion(v)
}
