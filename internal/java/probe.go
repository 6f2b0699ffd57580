package java

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
)

// Probe runs java executables and reads their reported version
type Probe struct {
	versionOutput  *regexp.Regexp
	numericVersion *regexp.Regexp
}

// NewProbe creates a Probe
func NewProbe() *Probe {
	return &Probe{
		versionOutput:  regexp.MustCompile(versionOutputPattern),
		numericVersion: regexp.MustCompile(numericVersionPattern),
	}
}

// Check runs "path -version" and parses the version the JVM writes to stderr
func (p *Probe) Check(ctx context.Context, path string) (RuntimeVersion, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "-version")
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return RuntimeVersion{}, &ProcessExitError{Path: path, Code: exitErr.ExitCode()}
		}
		return RuntimeVersion{}, &ProcessSpawnError{Path: path, Err: err}
	}

	m := p.versionOutput.FindSubmatch(stderr.Bytes())
	if m == nil {
		return RuntimeVersion{}, fmt.Errorf("%w: no version in output of %s", ErrVersionUnparseable, path)
	}

	version := string(m[1])
	major, err := p.ExtractMajorVersion(version)
	if err != nil {
		return RuntimeVersion{}, err
	}

	return RuntimeVersion{Version: version, Path: path, MajorVersion: major}, nil
}

// ExtractMajorVersion is the package-level ExtractMajorVersion using this probe's patterns
func (p *Probe) ExtractMajorVersion(version string) (int, error) {
	return extractMajorVersion(p.numericVersion, version)
}

// Lookup is Check with the error dropped
func (p *Probe) Lookup(ctx context.Context, path string) (RuntimeVersion, bool) {
	v, err := p.Check(ctx, path)
	if err != nil {
		return RuntimeVersion{}, false
	}
	return v, true
}

// Test reports whether the runtime at path has the expected major version
func (p *Probe) Test(ctx context.Context, path string, expected int) bool {
	v, ok := p.Lookup(ctx, path)
	return ok && v.MajorVersion == expected
}

// CheckSystem probes the java found on PATH
func (p *Probe) CheckSystem(ctx context.Context) (RuntimeVersion, bool) {
	return p.Lookup(ctx, "java")
}
