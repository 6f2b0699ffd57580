package installer

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"mcl/internal/catalog"
	"mcl/internal/logging"
	"mcl/internal/platform"
)

// Provisioner obtains a Java runtime for the host and installs it under javaDir
type Provisioner struct {
	distributor catalog.Distributor
	downloader  *Downloader
	configurer  *Configurer
	platform    platform.Platform
	javaDir     string
	logger      *zap.Logger

	// Concurrent installs of one major version share a single run
	inflight singleflight.Group
}

// ProvisionerOption configures a Provisioner
type ProvisionerOption func(*Provisioner)

// WithDownloader replaces the default downloader
func WithDownloader(d *Downloader) ProvisionerOption {
	return func(p *Provisioner) {
		if d != nil {
			p.downloader = d
		}
	}
}

// WithConfigurer replaces the default configurer (which has no pauses)
func WithConfigurer(c *Configurer) ProvisionerOption {
	return func(p *Provisioner) {
		if c != nil {
			p.configurer = c
		}
	}
}

// WithLogger sets the provisioner's logger
func WithLogger(logger *zap.Logger) ProvisionerOption {
	return func(p *Provisioner) {
		p.logger = logging.OrNop(logger).Named("provision")
	}
}

// NewProvisioner creates a Provisioner
func NewProvisioner(distributor catalog.Distributor, javaDir string, host platform.Platform, opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		distributor: distributor,
		downloader:  NewDownloader(),
		configurer:  &Configurer{},
		platform:    host,
		javaDir:     javaDir,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// JavaDir is the directory runtimes are installed under
func (p *Provisioner) JavaDir() string {
	return p.javaDir
}

// Install provisions Java major for the host and returns the executable path.
//
// Progress is reported to sink as it happens and sink.OnComplete is called exactly
// once with either the executable path or the first error's description. No stage
// is retried and nothing is cleaned up on failure.
func (p *Provisioner) Install(ctx context.Context, major int, sink EventSink) (string, error) {
	events := newMonotonicSink(sink)

	led := false
	v, err, shared := p.inflight.Do(strconv.Itoa(major), func() (any, error) {
		led = true
		return p.run(ctx, major, events.progress)
	})

	if err != nil {
		events.complete(false, err.Error())
		return "", err
	}

	path := v.(string)
	if shared && !led {
		p.logger.Debug("joined in-flight install", zap.Int(logging.KeyMajor, major))
		events.progress(1.0, fmt.Sprintf("Java %d installation complete!", major))
	}
	events.complete(true, path)
	return path, nil
}

func (p *Provisioner) run(ctx context.Context, major int, progress ProgressFunc) (path string, err error) {
	log := p.logger.With(zap.Int(logging.KeyMajor, major))
	state := StateInit
	enter := func(next State, fields ...zap.Field) {
		state = next
		log.Debug("provisioning", append([]zap.Field{zap.Stringer(logging.KeyState, state)}, fields...)...)
	}

	defer func() {
		if err != nil {
			log.Debug("stage failed", zap.Stringer("at", state), zap.Error(err))
			enter(StateFailed)
			return
		}
		enter(StateDone, zap.String(logging.KeyPath, path))
	}()

	enter(StateFetchingCatalog)
	progress(0.10, "Fetching Java version information")
	packages, err := p.distributor.FetchPackages(ctx, major)
	if err != nil {
		return "", err
	}
	if len(packages) == 0 {
		return "", &NoPackageError{Major: major, OS: p.platform.OS.String(), Arch: p.platform.Arch.String()}
	}

	pkg := packages[0]
	enter(StateAwaitingDownload)
	progress(0.15, fmt.Sprintf("Preparing to download Java %d", major))

	enter(StateDownloading)
	progress(DownloadStage.Start, fmt.Sprintf("Downloading Java %d", major))
	data, err := p.downloader.Download(ctx, pkg.DownloadURL, progress)
	if err != nil {
		return "", err
	}
	if pkg.SHA256 != "" {
		if err := VerifyChecksum(data, pkg.SHA256); err != nil {
			return "", err
		}
	}

	progress(ExtractStage.Start, "Download complete, extracting Java")
	if err := os.MkdirAll(p.javaDir, 0o755); err != nil {
		return "", &FilesystemError{Op: "create directory", Path: p.javaDir, Err: err}
	}

	enter(StateExtracting)
	progress(ExtractStage.Start, "Parsing archive...")
	rootDir, err := Extract(ctx, data, p.javaDir, progress)
	if err != nil {
		return "", err
	}
	log.Debug("archive extracted", zap.String("root", rootDir), zap.String("package", pkg.Name))

	enter(StateConfiguring)
	path, err = p.configurer.Place(p.javaDir, rootDir, major, p.platform.OS, progress)
	if err != nil {
		return "", err
	}

	enter(StateVerifying)
	p.configurer.Verify(ctx, major, progress)

	return path, nil
}
