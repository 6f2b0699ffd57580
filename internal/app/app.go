// Package app wires the configured components into one state container.
package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"mcl/internal/catalog"
	"mcl/internal/config"
	"mcl/internal/installer"
	"mcl/internal/java"
	"mcl/internal/logging"
	"mcl/internal/platform"
	"mcl/internal/sysmem"
)

// State holds everything a command needs. It is built once per process.
type State struct {
	Config      *config.Config
	Logger      *zap.Logger
	Platform    platform.Platform
	Distributor catalog.Distributor
	Provisioner *installer.Provisioner
	Probe       *java.Probe
	Detector    *java.Detector
	Memory      *sysmem.Probe
}

// Option adjusts how New builds the state
type Option func(*options)

type options struct {
	platform *platform.Platform
}

// WithPlatform skips host detection
func WithPlatform(p platform.Platform) Option {
	return func(o *options) {
		o.platform = &p
	}
}

// New builds the application state from cfg
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*State, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger = logging.OrNop(logger)

	host, err := resolvePlatform(o.platform)
	if err != nil {
		return nil, err
	}

	distributor := catalog.NewAzulDistributor(host,
		catalog.WithBaseURL(cfg.CatalogURL),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		catalog.WithLogger(logger),
	)

	configurer := &installer.Configurer{}
	if cfg.UXPauses {
		configurer.VerifyPause = installer.DefaultVerifyPause
		configurer.CompletePause = installer.DefaultCompletePause
	}

	downloader := installer.NewDownloader(
		installer.WithDownloadClient(&http.Client{Timeout: cfg.DownloadTimeout()}),
		installer.WithDownloadLogger(logger),
	)

	provisioner := installer.NewProvisioner(distributor, cfg.JavaDir(), host,
		installer.WithDownloader(downloader),
		installer.WithConfigurer(configurer),
		installer.WithLogger(logger),
	)

	probe := java.NewProbe()

	logger.Debug("state ready",
		zap.Stringer("platform", host),
		zap.String("java_dir", cfg.JavaDir()),
		zap.String("catalog", cfg.CatalogURL),
	)

	return &State{
		Config:      cfg,
		Logger:      logger,
		Platform:    host,
		Distributor: distributor,
		Provisioner: provisioner,
		Probe:       probe,
		Detector:    java.NewDetector(probe, cfg.JavaDir(), cfg.SearchPaths, logger),
		Memory:      sysmem.NewProbe(sysmem.WithLogger(logger)),
	}, nil
}

func resolvePlatform(p *platform.Platform) (platform.Platform, error) {
	if p != nil {
		return *p, nil
	}
	host, err := platform.Host()
	if err != nil {
		return platform.Platform{}, fmt.Errorf("cannot provision runtimes on this host: %w", err)
	}
	return host, nil
}
