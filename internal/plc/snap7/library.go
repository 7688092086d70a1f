// internal/plc/snap7/library.go
package snap7

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// Library is one loaded snap7 shared object with its client symbols bound.
type Library struct {
	path   string
	handle uintptr

	cliCreate              func() uintptr
	cliDestroy             func(client unsafe.Pointer)
	cliSetParam            func(client uintptr, param int32, value unsafe.Pointer) int32
	cliSetConnectionType   func(client uintptr, connType uint16) int32
	cliSetConnectionParams func(client uintptr, address string, localTSAP, remoteTSAP uint16) int32
	cliConnect             func(client uintptr) int32
	cliConnectTo           func(client uintptr, address string, rack, slot int32) int32
	cliDisconnect          func(client uintptr) int32
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Library{}
)

// Open loads the library at path once per process and binds its symbols.
// Failures are returned, never panicked.
func Open(path string) (*Library, error) {
	if path == "" {
		return nil, errors.New("snap7: library path required")
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if lib, ok := cache[path]; ok {
		return lib, nil
	}

	h, err := openLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("snap7: load %s: %w", path, err)
	}

	lib := &Library{path: path, handle: h}
	if err := lib.bind(); err != nil {
		return nil, err
	}

	cache[path] = lib
	return lib, nil
}

// Path is the file the library was loaded from.
func (l *Library) Path() string { return l.path }

// newClient creates a native client object and applies options.
func (l *Library) newClient(opts Options) (uintptr, error) {
	h := l.cliCreate()
	if h == 0 {
		return 0, errors.New("snap7: Cli_Create returned null")
	}

	if opts.ConnectionType > 0 {
		if rc := l.cliSetConnectionType(h, opts.ConnectionType); rc != 0 {
			l.destroy(h)
			return 0, &Error{Op: "set connection type", Code: rc}
		}
	}

	if opts.RemotePort > 0 {
		port := uint16(opts.RemotePort)
		if rc := l.cliSetParam(h, paramRemotePort, unsafe.Pointer(&port)); rc != 0 {
			l.destroy(h)
			return 0, &Error{Op: "set remote port", Code: rc}
		}
	}

	if opts.Timeout > 0 {
		ms := int32(opts.Timeout.Milliseconds())
		for _, p := range []int32{paramPingTimeout, paramSendTimeout, paramRecvTimeout} {
			if rc := l.cliSetParam(h, p, unsafe.Pointer(&ms)); rc != 0 {
				l.destroy(h)
				return 0, &Error{Op: "set timeout", Code: rc}
			}
		}
	}

	return h, nil
}

func (l *Library) destroy(h uintptr) {
	if h == 0 {
		return
	}
	l.cliDestroy(unsafe.Pointer(&h))
}

// Client parameter numbers (snap7.h).
const (
	paramRemotePort  int32 = 2
	paramPingTimeout int32 = 3
	paramSendTimeout int32 = 4
	paramRecvTimeout int32 = 5
)
