package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform is returned for operating systems no runtime catalog serves
var ErrUnsupportedPlatform = errors.New("unsupported operating system")

// OS identifies a host operating system family
type OS int

const (
	Windows OS = iota
	MacOS
	Linux
)

// String returns the catalog name of the OS
func (o OS) String() string {
	switch o {
	case Windows:
		return "windows"
	case MacOS:
		return "macos"
	case Linux:
		return "linux"
	default:
		return "unknown"
	}
}

// Arch identifies a CPU architecture
type Arch int

const (
	X64 Arch = iota
	Arm64
)

// String returns the catalog name of the architecture
func (a Arch) String() string {
	if a == Arm64 {
		return "arm64"
	}
	return "x64"
}

// Platform is the (OS, arch) pair the host resolves to
type Platform struct {
	OS   OS
	Arch Arch
}

func (p Platform) String() string {
	return p.OS.String() + "/" + p.Arch.String()
}

// Detect maps Go's GOOS/GOARCH values onto a Platform.
// Unknown architectures fall back to x64; unknown operating systems are an error.
func Detect(goos, goarch string) (Platform, error) {
	var p Platform

	switch goos {
	case "windows":
		p.OS = Windows
	case "darwin":
		p.OS = MacOS
	case "linux":
		p.OS = Linux
	default:
		return Platform{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}

	switch goarch {
	case "arm64":
		p.Arch = Arm64
	default:
		p.Arch = X64
	}

	return p, nil
}

// Host detects the platform of the running process
func Host() (Platform, error) {
	p, err := Detect(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return Platform{}, err
	}

	// An amd64 build running under Rosetta still wants a native arm64 runtime
	if p.OS == MacOS && p.Arch == X64 && translated() {
		p.Arch = Arm64
	}

	return p, nil
}
