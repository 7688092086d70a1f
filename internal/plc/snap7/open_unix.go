// internal/plc/snap7/open_unix.go

//go:build darwin || freebsd || linux

package snap7

import "github.com/ebitengine/purego"

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
