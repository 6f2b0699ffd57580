package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mcl/internal/platform"
)

// Pauses the CLI inserts so the last progress steps stay readable
const (
	DefaultVerifyPause   = 500 * time.Millisecond
	DefaultCompletePause = 1 * time.Second
)

// Configurer moves an extracted runtime into its canonical directory
type Configurer struct {
	VerifyPause   time.Duration
	CompletePause time.Duration
}

// TargetDirName is the canonical directory name for a major version
func TargetDirName(major int) string {
	return fmt.Sprintf("zulu%d", major)
}

// ExecutablePath builds the Java executable path inside an installed runtime.
// The path is not checked for existence.
func ExecutablePath(target string, major int, hostOS platform.OS) string {
	switch hostOS {
	case platform.MacOS:
		return filepath.Join(target, fmt.Sprintf("zulu-%d.jre", major), "Contents", "Home", "bin", "java")
	case platform.Windows:
		return filepath.Join(target, "bin", "javaw.exe")
	default:
		return filepath.Join(target, "bin", "java")
	}
}

// Configure places the runtime and then runs the verification steps
func (c *Configurer) Configure(ctx context.Context, versionsDir, rootDir string, major int, hostOS platform.OS, onProgress ProgressFunc) (string, error) {
	path, err := c.Place(versionsDir, rootDir, major, hostOS, onProgress)
	if err != nil {
		return "", err
	}
	c.Verify(ctx, major, onProgress)
	return path, nil
}

// Place renames versionsDir/rootDir to versionsDir/zulu{major}, replacing any
// previous installation, and returns the executable path
func (c *Configurer) Place(versionsDir, rootDir string, major int, hostOS platform.OS, onProgress ProgressFunc) (string, error) {
	report(onProgress, 0.96, "Configuring Java environment...")

	target := filepath.Join(versionsDir, TargetDirName(major))
	original := filepath.Join(versionsDir, rootDir)
	report(onProgress, 0.97, "Renaming Java directory...")

	// An archive whose root already carries the canonical name is in place
	if filepath.Clean(original) == filepath.Clean(target) {
		report(onProgress, 0.98, "Building Java executable path...")
		return ExecutablePath(target, major, hostOS), nil
	}

	// Remove old installation if exists
	if _, err := os.Stat(target); err == nil {
		if err := os.RemoveAll(target); err != nil {
			return "", &FilesystemError{Op: "remove", Path: target, Err: err}
		}
	}

	if _, err := os.Stat(original); err == nil {
		if err := os.Rename(original, target); err != nil {
			return "", &FilesystemError{Op: "rename", Path: original, Err: err}
		}
	}

	report(onProgress, 0.98, "Building Java executable path...")
	return ExecutablePath(target, major, hostOS), nil
}

// Verify emits the closing progress steps with their pauses
func (c *Configurer) Verify(ctx context.Context, major int, onProgress ProgressFunc) {
	report(onProgress, 0.99, "Verifying installation...")
	pause(ctx, c.VerifyPause)

	report(onProgress, 1.0, fmt.Sprintf("Java %d installation complete!", major))
	pause(ctx, c.CompletePause)
}

func report(onProgress ProgressFunc, fraction float64, message string) {
	if onProgress != nil {
		onProgress(fraction, message)
	}
}

// pause sleeps for d unless ctx ends first
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
