// internal/plc/snap7/open_other.go

//go:build !darwin && !freebsd && !linux && !windows

package snap7

import "errors"

var errNoLoader = errors.New("native libraries cannot be loaded on this platform")

func openLibrary(path string) (uintptr, error) {
	return 0, errNoLoader
}

func (l *Library) bind() error {
	return errNoLoader
}
