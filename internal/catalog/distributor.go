package catalog

import "context"

// Distributor represents a Java runtime package catalog
type Distributor interface {
	Name() string
	FetchPackages(ctx context.Context, major int) ([]Package, error)
}

// Package is a downloadable runtime build
type Package struct {
	DownloadURL string `json:"download_url"`
	Name        string `json:"name"`
	SHA256      string `json:"sha256_hash,omitempty"` // Only present on detailed catalog responses
}

// Release describes a Java feature release offered for installation
type Release struct {
	Major int
	IsLTS bool
}

// KnownReleases returns the majors offered in interactive selection, newest first
func KnownReleases() []Release {
	return []Release{
		{Major: 25, IsLTS: true},
		{Major: 24, IsLTS: false},
		{Major: 23, IsLTS: false},
		{Major: 22, IsLTS: false},
		{Major: 21, IsLTS: true},
		{Major: 17, IsLTS: true},
		{Major: 16, IsLTS: false},
		{Major: 11, IsLTS: true},
		{Major: 8, IsLTS: true},
	}
}
