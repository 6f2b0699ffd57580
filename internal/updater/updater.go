package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"go.uber.org/zap"

	"mcl/internal/config"
	"mcl/internal/logging"
)

const (
	// CheckInterval is minimum time between update checks
	CheckInterval = 24 * time.Hour

	// UpdateTimeout is maximum time for update operations
	UpdateTimeout = 5 * time.Minute

	checksumFile = "SHA256SUMS.txt"
)

// ErrNoReleases is returned when the repository has no matching release
var ErrNoReleases = errors.New("no releases found")

// Release is a published mcl build for the running platform
type Release struct {
	Version   string
	AssetURL  string
	AssetName string
	AssetSize int
	Notes     string
}

// Source finds and installs releases
type Source interface {
	Latest(ctx context.Context) (Release, bool, error)
	Apply(ctx context.Context, release Release, exe string) error
}

// githubSource resolves releases through go-selfupdate
type githubSource struct {
	updater *selfupdate.Updater
	slug    string
}

// NewGitHubSource creates a Source for owner/name that validates assets against SHA256SUMS.txt
func NewGitHubSource(repository string) (Source, error) {
	// Configure selfupdate with SHA256 checksum validation
	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{
			UniqueFilename: checksumFile,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return &githubSource{updater: su, slug: repository}, nil
}

func (g *githubSource) Latest(ctx context.Context) (Release, bool, error) {
	latest, found, err := g.updater.DetectLatest(ctx, selfupdate.ParseSlug(g.slug))
	if err != nil || !found {
		return Release{}, found, err
	}
	return Release{
		Version:   latest.Version(),
		AssetURL:  latest.AssetURL,
		AssetName: latest.AssetName,
		AssetSize: latest.AssetByteSize,
		Notes:     latest.ReleaseNotes,
	}, true, nil
}

func (g *githubSource) Apply(ctx context.Context, release Release, exe string) error {
	return selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe)
}

// Updater handles checking and applying updates
type Updater struct {
	config         *config.Config
	currentVersion string
	source         Source
	logger         *zap.Logger
	now            func() time.Time
}

// New creates an Updater for the running version
func New(cfg *config.Config, version string, source Source, logger *zap.Logger) *Updater {
	return &Updater{
		config:         cfg,
		currentVersion: cleanVersion(version),
		source:         source,
		logger:         logging.OrNop(logger).Named("update"),
		now:            time.Now,
	}
}

// CurrentVersion is the running version without a "v" prefix
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// ShouldCheckForUpdate determines if an update check should be performed
// based on config settings and last check time
func (u *Updater) ShouldCheckForUpdate() bool {
	if !u.config.Update.Enabled || !u.config.Update.AutoCheck {
		return false
	}

	// Rate limit: check at most once per CheckInterval
	return u.now().Sub(u.config.Update.LastCheck) >= CheckInterval
}

// CheckForUpdate returns the latest release when it is newer than the running
// version and was not skipped. A nil release means there is nothing to do.
func (u *Updater) CheckForUpdate(ctx context.Context) (*Release, error) {
	latest, found, err := u.source.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, ErrNoReleases
	}

	u.config.Update.LastCheck = u.now()
	if err := u.config.Save(); err != nil {
		u.logger.Warn("failed to save config", zap.Error(err))
	}

	if !isNewer(latest.Version, u.currentVersion) {
		return nil, nil
	}

	// Check if user explicitly skipped this version
	if u.config.Update.SkipVersion == latest.Version {
		u.logger.Debug("release skipped by user", zap.String("version", latest.Version))
		return nil, nil
	}

	return &latest, nil
}

// PerformUpdate installs release over exe, restoring a backup on failure
func (u *Updater) PerformUpdate(ctx context.Context, release *Release, exe string) error {
	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := u.source.Apply(ctx, *release, exe); err != nil {
		if rollbackErr := os.Rename(backup, exe); rollbackErr != nil {
			return fmt.Errorf("update failed and rollback failed: update error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("update failed (rolled back): %w", err)
	}

	if err := os.Remove(backup); err != nil {
		u.logger.Debug("backup left in place", zap.String(logging.KeyPath, backup), zap.Error(err))
	}
	u.logger.Info("updated", zap.String("from", u.currentVersion), zap.String("to", release.Version))
	return nil
}

// SkipVersion marks a version as skipped by the user
func (u *Updater) SkipVersion(version string) error {
	u.config.Update.SkipVersion = version
	return u.config.Save()
}

// isNewer compares semantic versions; unparseable versions are never newer
func isNewer(candidate, current string) bool {
	c, err := semver.NewVersion(cleanVersion(candidate))
	if err != nil {
		return false
	}
	cur, err := semver.NewVersion(cleanVersion(current))
	if err != nil {
		// Development builds ("dev") always accept a release
		return true
	}
	return c.GreaterThan(cur)
}

// copyFile creates a copy of the file for backup purposes
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}

// cleanVersion removes 'v' prefix if present for consistent comparison
func cleanVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
