// internal/plc/snap7/client.go
package snap7

import (
	"errors"
	"time"

	"github.com/tamzrod/siemens-plc/internal/plc"
)

// Options tune native client objects before connect.
// Zero values keep the library defaults.
type Options struct {
	Timeout        time.Duration
	RemotePort     int
	ConnectionType uint16
}

// Backend builds snap7 clients from a located library path.
type Backend struct {
	Options Options
}

var _ plc.Backend = Backend{}

func (b Backend) NewLogo(libPath string) (plc.LogoClient, error) {
	lib, err := Open(libPath)
	if err != nil {
		return nil, err
	}
	h, err := lib.newClient(b.Options)
	if err != nil {
		return nil, err
	}
	return &LogoClient{lib: lib, handle: h}, nil
}

func (b Backend) NewS7(libPath string) (plc.S7Client, error) {
	lib, err := Open(libPath)
	if err != nil {
		return nil, err
	}
	h, err := lib.newClient(b.Options)
	if err != nil {
		return nil, err
	}
	return &S7Client{lib: lib, handle: h}, nil
}

var errReleased = errors.New("snap7: client already released")

// ---- LOGO ----

// LogoClient connects by TSAP pair. Like the library's Logo binding,
// a non-zero code is raised as *Error; nil means connected.
type LogoClient struct {
	lib    *Library
	handle uintptr
}

func (c *LogoClient) Connect(ip string, localTSAP, remoteTSAP uint16) error {
	if c.handle == 0 {
		return errReleased
	}
	if rc := c.lib.cliSetConnectionParams(c.handle, ip, localTSAP, remoteTSAP); rc != 0 {
		return &Error{Op: "set connection params", Code: rc}
	}
	if rc := c.lib.cliConnect(c.handle); rc != 0 {
		return &Error{Op: "connect", Code: rc}
	}
	return nil
}

// Disconnect closes the link and destroys the native object.
func (c *LogoClient) Disconnect() error {
	return release(c.lib, &c.handle)
}

// ---- S7 ----

// S7Client connects by rack/slot and hands back the raw result code.
type S7Client struct {
	lib    *Library
	handle uintptr
}

func (c *S7Client) Connect(ip string, rack, slot int) (int, error) {
	if c.handle == 0 {
		return 0, errReleased
	}
	rc := c.lib.cliConnectTo(c.handle, ip, int32(rack), int32(slot))
	return int(rc), nil
}

// Disconnect closes the link and destroys the native object.
func (c *S7Client) Disconnect() error {
	return release(c.lib, &c.handle)
}

func release(lib *Library, handle *uintptr) error {
	h := *handle
	if h == 0 {
		return nil
	}
	*handle = 0

	rc := lib.cliDisconnect(h)
	lib.destroy(h)

	if rc != 0 {
		return &Error{Op: "disconnect", Code: rc}
	}
	return nil
}
