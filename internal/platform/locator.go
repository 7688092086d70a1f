// internal/platform/locator.go
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Operating system names as reported by the host.
const (
	Linux   = "Linux"
	Darwin  = "Darwin"
	Windows = "Windows"
)

// CPU architecture names as reported by the host.
const (
	X86_64  = "x86_64"
	AArch64 = "aarch64"
	ARMv7l  = "armv7l"
	AMD64   = "AMD64"
)

// ErrUnsupportedPlatform means no native library is shipped for the platform.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Descriptor identifies the running platform.
type Descriptor struct {
	OS   string `json:"os" yaml:"os"`
	Arch string `json:"arch" yaml:"arch"`
}

func (d Descriptor) String() string {
	return d.OS + "/" + d.Arch
}

// ---- LIBRARY TABLE ----

type entry struct {
	os   string
	arch string // empty = any
	rel  string
}

// Order matters: first match wins.
var table = []entry{
	{os: Linux, arch: X86_64, rel: "lib/linux_x86_64/libsnap7.so"},
	{os: Darwin, arch: "", rel: "lib/macosx_universal/libsnap7.dylib"},
	{os: Windows, arch: AMD64, rel: "lib/win_amd64/libsnap7.dll"},
	{os: Linux, arch: AArch64, rel: "lib/linux_aarch64/libsnap7.so"},
	{os: Linux, arch: ARMv7l, rel: "lib/linux_armv7l/libsnap7.so"},
}

// Locate maps a descriptor to the snap7 library path under baseDir.
// Exact match only. The file is not checked for existence.
func Locate(baseDir string, d Descriptor) (string, error) {
	for _, e := range table {
		if e.os != d.OS {
			continue
		}
		if e.arch != "" && e.arch != d.Arch {
			continue
		}
		return filepath.Join(baseDir, filepath.FromSlash(e.rel)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, d)
}

// ---- RUNTIME DETECTION ----

// Current describes the platform this binary runs on, using the names
// the host itself reports (uname / PROCESSOR_ARCHITECTURE).
func Current() Descriptor {
	return FromGo(runtime.GOOS, runtime.GOARCH)
}

// FromGo converts Go's GOOS/GOARCH pair into a Descriptor.
// Unknown values pass through unchanged so Locate rejects them.
func FromGo(goos, goarch string) Descriptor {
	d := Descriptor{OS: goos, Arch: goarch}

	switch goos {
	case "linux":
		d.OS = Linux
	case "darwin":
		d.OS = Darwin
	case "windows":
		d.OS = Windows
	}

	switch goarch {
	case "amd64":
		if d.OS == Windows {
			d.Arch = AMD64
		} else {
			d.Arch = X86_64
		}
	case "arm64":
		if d.OS == Darwin {
			d.Arch = "arm64"
		} else {
			d.Arch = AArch64
		}
	case "arm":
		d.Arch = ARMv7l
	}

	return d
}

// InstallDir returns the directory holding the running executable.
// It is never the process working directory.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("platform: executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Locator resolves the library path for a fixed base directory and platform.
type Locator struct {
	BaseDir  string
	Platform Descriptor
}

// NewLocator builds a locator for the running platform.
// An empty baseDir falls back to InstallDir.
func NewLocator(baseDir string) (*Locator, error) {
	if baseDir == "" {
		dir, err := InstallDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	return &Locator{BaseDir: baseDir, Platform: Current()}, nil
}

// Path recomputes the library path on every call.
func (l *Locator) Path() (string, error) {
	return Locate(l.BaseDir, l.Platform)
}
