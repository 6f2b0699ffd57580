package installer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mcl/internal/config"
	"mcl/internal/logging"
)

// Largest buffer preallocated from a Content-Length header
const maxPrealloc = 512 << 20

// HTTPClient is the subset of *http.Client the downloader needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Downloader fetches runtime archives into memory
type Downloader struct {
	client HTTPClient
	logger *zap.Logger
}

// DownloaderOption configures a Downloader
type DownloaderOption func(*Downloader)

// WithDownloadClient overrides the HTTP client used for archive downloads
func WithDownloadClient(client HTTPClient) DownloaderOption {
	return func(d *Downloader) {
		if client != nil {
			d.client = client
		}
	}
}

// WithDownloadLogger sets the downloader's logger
func WithDownloadLogger(logger *zap.Logger) DownloaderOption {
	return func(d *Downloader) {
		d.logger = logging.OrNop(logger).Named("download")
	}
}

// NewDownloader creates a Downloader with the default download timeout
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client: &http.Client{Timeout: config.DefaultDownloadTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches url and returns the whole body.
// onProgress is called once per received chunk over DownloadStage, but only
// when the server reports a Content-Length.
func (d *Downloader) Download(ctx context.Context, url string, onProgress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadUnreachable, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadStatusError{Status: resp.StatusCode}
	}

	totalSize := resp.ContentLength
	d.logger.Debug("downloading archive", zap.String(logging.KeyURL, url), zap.Int64("bytes", totalSize))

	var buf bytes.Buffer
	if totalSize > 0 {
		buf.Grow(int(min(totalSize, maxPrealloc)))
	}

	// Write to the buffer AND the progress tracker
	pw := newProgressWriter(totalSize, DownloadStage, onProgress)
	written, err := io.Copy(io.MultiWriter(&buf, pw), resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownloadUnreachable, err)
	}

	if totalSize > 0 && written != totalSize {
		return nil, fmt.Errorf("%w: incomplete download: got %d bytes, expected %d", ErrDownloadUnreachable, written, totalSize)
	}

	return buf.Bytes(), nil
}

// VerifyChecksum verifies the SHA256 checksum of a downloaded payload
func VerifyChecksum(data []byte, expectedChecksum string) error {
	sum := sha256.Sum256(data)
	actualChecksum := hex.EncodeToString(sum[:])
	if !strings.EqualFold(actualChecksum, expectedChecksum) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expectedChecksum, actualChecksum)
	}
	return nil
}

func formatDownloadMessage(mbDone, mbTotal float64) string {
	return fmt.Sprintf("Downloading... %.1fMB / %.1fMB", mbDone, mbTotal)
}
