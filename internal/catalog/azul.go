package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mcl/internal/config"
	"mcl/internal/logging"
	"mcl/internal/platform"
)

// HTTPClient is the subset of *http.Client the catalog needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// AzulDistributor implements the Distributor interface for Azul Zulu builds
type AzulDistributor struct {
	baseURL  string
	client   HTTPClient
	platform platform.Platform
	logger   *zap.Logger
}

// Option configures an AzulDistributor
type Option func(*AzulDistributor)

// WithBaseURL overrides the catalog endpoint
func WithBaseURL(base string) Option {
	return func(a *AzulDistributor) {
		if base != "" {
			a.baseURL = base
		}
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client HTTPClient) Option {
	return func(a *AzulDistributor) {
		if client != nil {
			a.client = client
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *AzulDistributor) {
		a.logger = logging.OrNop(logger).Named("catalog")
	}
}

// NewAzulDistributor creates a catalog client that queries builds for p
func NewAzulDistributor(p platform.Platform, opts ...Option) *AzulDistributor {
	a := &AzulDistributor{
		baseURL:  config.DefaultCatalogURL,
		client:   &http.Client{Timeout: config.DefaultHTTPTimeout},
		platform: p,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the distributor name
func (a *AzulDistributor) Name() string {
	return "Azul Zulu"
}

// QueryURL builds the catalog query for a major version
func (a *AzulDistributor) QueryURL(major int) string {
	sep := "?"
	if strings.Contains(a.baseURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sarch=%s&java_version=%d&os=%s&archive_type=zip&javafx_bundled=false&java_package_type=jre&page_size=1",
		a.baseURL, sep, a.platform.Arch, major, a.platform.OS)
}

// FetchPackages queries the catalog for JRE zip builds of the given major version.
// An empty result is not an error; the caller decides whether that is fatal.
func (a *AzulDistributor) FetchPackages(ctx context.Context, major int) ([]Package, error) {
	url := a.QueryURL(major)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnreachable, err)
	}

	var packages []Package
	if err := json.Unmarshal(body, &packages); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogParse, err)
	}

	a.logger.Debug("catalog query finished",
		zap.String(logging.KeyURL, url),
		zap.Int(logging.KeyMajor, major),
		zap.Int("results", len(packages)),
		zap.Duration("took", time.Since(start)),
	)

	return packages, nil
}
