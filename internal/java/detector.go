package java

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"

	"mcl/internal/logging"
)

var dirNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`zulu-?(\d+(?:\.\d+)*)`),
	regexp.MustCompile(`jdk(1\.\d+\.\d+_\d+)`),
	regexp.MustCompile(`jdk-?(\d+(?:\.\d+)*(?:_\d+)?)`),
	regexp.MustCompile(`jre-?(\d+(?:\.\d+)*)`),
	regexp.MustCompile(`java-?(\d+(?:\.\d+)*)`),
}

// Detector finds Java installations on the system
type Detector struct {
	probe       *Probe
	searchPaths []string
	logger      *zap.Logger
}

// NewDetector creates a detector over the managed java directory and any extra search paths
func NewDetector(probe *Probe, javaDir string, searchPaths []string, logger *zap.Logger) *Detector {
	if probe == nil {
		probe = NewProbe()
	}
	paths := append([]string{javaDir}, searchPaths...)
	return &Detector{
		probe:       probe,
		searchPaths: paths,
		logger:      logging.OrNop(logger).Named("detect"),
	}
}

// FindAll finds all Java installations under the search paths, newest first
func (d *Detector) FindAll(ctx context.Context) []Installation {
	// Use a map to deduplicate by path (case-insensitive)
	seen := make(map[string]Installation)

	for _, basePath := range d.searchPaths {
		if basePath == "" {
			continue
		}
		entries, err := os.ReadDir(basePath)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			home := filepath.Join(basePath, entry.Name())
			exe := findExecutable(home)
			if exe == "" {
				continue
			}

			key := strings.ToLower(filepath.Clean(exe))
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = d.inspect(ctx, home, exe)
		}
	}

	found := make([]Installation, 0, len(seen))
	for _, inst := range seen {
		found = append(found, inst)
	}
	sort.Slice(found, func(i, j int) bool {
		if c := CompareVersions(found[i].Version, found[j].Version); c != 0 {
			return c > 0
		}
		return found[i].Path < found[j].Path
	})

	d.logger.Debug("scan finished", zap.Int("found", len(found)))
	return found
}

// Find returns the newest verified installation of the given major version
func (d *Detector) Find(ctx context.Context, major int) (Installation, bool) {
	for _, inst := range d.FindAll(ctx) {
		if inst.Verified && inst.Major == major {
			return inst, true
		}
	}
	return Installation{}, false
}

func (d *Detector) inspect(ctx context.Context, home, exe string) Installation {
	inst := Installation{Path: exe, Home: home}

	v, err := d.probe.Check(ctx, exe)
	if err == nil {
		inst.Version = v.Version
		inst.Major = v.MajorVersion
		inst.Verified = true
		return inst
	}
	d.logger.Debug("probe failed", zap.String(logging.KeyPath, exe), zap.Error(err))

	// Fallback: extract from directory name
	inst.Version = parseVersionFromDirName(filepath.Base(home))
	inst.Major, _ = ExtractMajorVersion(inst.Version)
	return inst
}

// findExecutable locates the java binary inside a runtime directory, or returns ""
func findExecutable(home string) string {
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}

	candidates := []string{
		filepath.Join(home, "bin", name),
		filepath.Join(home, "Contents", "Home", "bin", name),
	}
	// macOS bundles nest a .jre or .jdk directory
	nested, _ := filepath.Glob(filepath.Join(home, "*.jre", "Contents", "Home", "bin", name))
	candidates = append(candidates, nested...)
	nested, _ = filepath.Glob(filepath.Join(home, "*.jdk", "Contents", "Home", "bin", name))
	candidates = append(candidates, nested...)

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// parseVersionFromDirName extracts version from directory names like "jdk-17" or "zulu21"
func parseVersionFromDirName(dirName string) string {
	dirName = strings.ToLower(dirName)

	for _, re := range dirNamePatterns {
		if matches := re.FindStringSubmatch(dirName); len(matches) > 1 {
			return matches[1]
		}
	}

	// Return dir name as-is if no pattern matches
	return dirName
}
