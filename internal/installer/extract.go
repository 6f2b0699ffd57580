package installer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Root reported when the archive has no directory entries
const unknownRoot = "unknown"

type archiveEntry struct {
	name  string
	isDir bool
	mode  fs.FileMode
	data  []byte
}

// Extract unpacks a zip payload under destDir and returns the archive's root directory name.
//
// Parsing happens in one synchronous pass that decompresses every entry into memory.
// Entries are then written in archive order, reporting ExtractStage progress after each
// one and yielding the processor every FileBatchSize entries. Cancellation is checked
// between batches. A failure part way through leaves whatever was already written in
// place, and files left by an earlier run are overwritten.
func Extract(ctx context.Context, data []byte, destDir string, onProgress ProgressFunc) (string, error) {
	entries, rootDir, err := parseArchive(data)
	if err != nil {
		return "", err
	}

	total := len(entries)
	for i, entry := range entries {
		target := filepath.Join(destDir, filepath.FromSlash(entry.name))

		if entry.isDir {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", &FilesystemError{Op: "create directory", Path: target, Err: err}
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", &FilesystemError{Op: "create directory", Path: filepath.Dir(target), Err: err}
			}
			if err := writeEntry(target, entry.data, entry.mode); err != nil {
				return "", &FilesystemError{Op: "write", Path: target, Err: err}
			}
		}

		if onProgress != nil {
			local := float64(i+1) / float64(total)
			onProgress(ExtractStage.At(local), fmt.Sprintf("Extracting... %d/%d files", i+1, total))
		}

		if (i+1)%FileBatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			runtime.Gosched()
		}
	}

	return rootDir, nil
}

// writeEntry replaces any file at target, including read-only ones from an earlier extraction
func writeEntry(target string, data []byte, mode fs.FileMode) error {
	if info, err := os.Lstat(target); err == nil && !info.IsDir() {
		if info.Mode().Perm()&0o200 == 0 {
			_ = os.Chmod(target, info.Mode().Perm()|0o200)
		}
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return os.WriteFile(target, data, mode)
}

// parseArchive reads every entry of the archive up front
func parseArchive(data []byte) ([]archiveEntry, string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrArchiveCorrupt, err)
	}

	rootDir := ""
	entries := make([]archiveEntry, 0, len(reader.File))

	for _, file := range reader.File {
		name := file.Name
		if !filepath.IsLocal(filepath.FromSlash(strings.TrimSuffix(name, "/"))) {
			return nil, "", fmt.Errorf("%w: entry %q escapes the target directory", ErrArchiveCorrupt, name)
		}

		isDir := file.FileInfo().IsDir()
		if isDir {
			// First top-level directory names the archive root
			if rootDir == "" {
				parts := strings.Split(name, "/")
				if parts[0] != "" {
					rootDir = parts[0]
				}
			}
			entries = append(entries, archiveEntry{name: name, isDir: true})
			continue
		}

		buf, err := readEntry(file)
		if err != nil {
			return nil, "", fmt.Errorf("%w %s: %w", ErrArchiveEntryRead, name, err)
		}

		mode := file.Mode().Perm()
		if mode == 0 {
			mode = 0o644
		}
		entries = append(entries, archiveEntry{name: name, mode: mode, data: buf})
	}

	if rootDir == "" {
		rootDir = unknownRoot
	}

	return entries, rootDir, nil
}

func readEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
