package installer

import (
	"errors"
	"fmt"
)

var (
	// ErrDownloadUnreachable wraps transport failures while fetching an archive
	ErrDownloadUnreachable = errors.New("download unreachable")

	// ErrChecksumMismatch is returned when a package advertises a digest the payload does not match
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrArchiveCorrupt is returned when the payload is not a readable zip archive
	ErrArchiveCorrupt = errors.New("archive corrupt")

	// ErrArchiveEntryRead is returned when a single archive entry cannot be decompressed
	ErrArchiveEntryRead = errors.New("failed to read archive entry")
)

// DownloadStatusError reports a non-success HTTP status from the download server
type DownloadStatusError struct {
	Status int
}

func (e *DownloadStatusError) Error() string {
	return fmt.Sprintf("download failed with status: %d", e.Status)
}

// FilesystemError reports a failed create, write, rename or remove
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// NoPackageError is returned when the catalog has no build for the host
type NoPackageError struct {
	Major int
	OS    string
	Arch  string
}

func (e *NoPackageError) Error() string {
	return fmt.Sprintf("no Java %d package found for %s/%s", e.Major, e.OS, e.Arch)
}
