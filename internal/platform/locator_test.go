// internal/platform/locator_test.go
package platform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate_Table(t *testing.T) {
	base := filepath.FromSlash("/opt/siemens-plc")

	cases := []struct {
		d    Descriptor
		want string
	}{
		{Descriptor{Linux, X86_64}, "lib/linux_x86_64/libsnap7.so"},
		{Descriptor{Darwin, X86_64}, "lib/macosx_universal/libsnap7.dylib"},
		{Descriptor{Darwin, "arm64"}, "lib/macosx_universal/libsnap7.dylib"},
		{Descriptor{Windows, AMD64}, "lib/win_amd64/libsnap7.dll"},
		{Descriptor{Linux, AArch64}, "lib/linux_aarch64/libsnap7.so"},
		{Descriptor{Linux, ARMv7l}, "lib/linux_armv7l/libsnap7.so"},
	}

	for _, tc := range cases {
		got, err := Locate(base, tc.d)
		require.NoError(t, err, tc.d.String())
		assert.Equal(t, filepath.Join(base, filepath.FromSlash(tc.want)), got, tc.d.String())
	}
}

func TestLocate_Unsupported(t *testing.T) {
	for _, d := range []Descriptor{
		{Windows, X86_64}, // Windows reports AMD64, never x86_64
		{Windows, "ARM64"},
		{Linux, "riscv64"},
		{Linux, AMD64},
		{"FreeBSD", X86_64},
		{},
	} {
		path, err := Locate("/base", d)
		assert.Empty(t, path, d.String())
		assert.True(t, errors.Is(err, ErrUnsupportedPlatform), d.String())
	}
}

func TestLocate_Idempotent(t *testing.T) {
	d := Descriptor{Linux, AArch64}

	first, err := Locate("/base", d)
	require.NoError(t, err)
	second, err := Locate("/base", d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFromGo(t *testing.T) {
	assert.Equal(t, Descriptor{Linux, X86_64}, FromGo("linux", "amd64"))
	assert.Equal(t, Descriptor{Linux, AArch64}, FromGo("linux", "arm64"))
	assert.Equal(t, Descriptor{Linux, ARMv7l}, FromGo("linux", "arm"))
	assert.Equal(t, Descriptor{Windows, AMD64}, FromGo("windows", "amd64"))
	assert.Equal(t, Descriptor{Darwin, "arm64"}, FromGo("darwin", "arm64"))
	assert.Equal(t, Descriptor{"plan9", "386"}, FromGo("plan9", "386"))
}

func TestLocator_UsesBaseDirNotWorkingDir(t *testing.T) {
	l := &Locator{BaseDir: "/install", Platform: Descriptor{Linux, X86_64}}

	got, err := l.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/install", "lib", "linux_x86_64", "libsnap7.so"), got)
}

func TestNewLocator_DefaultsToInstallDir(t *testing.T) {
	l, err := NewLocator("")
	require.NoError(t, err)

	dir, err := InstallDir()
	require.NoError(t, err)
	assert.Equal(t, dir, l.BaseDir)
	assert.Equal(t, Current(), l.Platform)
}
