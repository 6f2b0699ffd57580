package manifest

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeVersionInfo reads a vanilla version manifest
func DecodeVersionInfo(r io.Reader) (VersionInfo, error) {
	var v VersionInfo
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return VersionInfo{}, fmt.Errorf("failed to decode version manifest: %w", err)
	}
	return v, nil
}

// DecodePartial reads a loader partial manifest
func DecodePartial(r io.Reader) (PartialVersionInfo, error) {
	var p PartialVersionInfo
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return PartialVersionInfo{}, fmt.Errorf("failed to decode partial manifest: %w", err)
	}
	return p, nil
}

// DecodeLoaderManifest reads a loader index
func DecodeLoaderManifest(r io.Reader) (LoaderManifest, error) {
	var m LoaderManifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return LoaderManifest{}, fmt.Errorf("failed to decode loader manifest: %w", err)
	}
	return m, nil
}

// Encode writes v as indented JSON
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
