// internal/plc/s7tcp/client.go
package s7tcp

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/robinson/gos7"

	"github.com/tamzrod/siemens-plc/internal/plc"
)

// DefaultPort is the ISO-on-TCP port.
const DefaultPort = 102

// ErrLogoUnsupported is returned for Logo! probes: TSAP addressing
// needs the native snap7 backend.
var ErrLogoUnsupported = errors.New("s7tcp: logo devices require the snap7 backend")

// Config is minimal transport config.
type Config struct {
	Port    int
	Timeout time.Duration
	// ConnectType is the S7 connection type (1 PG, 2 OP, 3 basic). 0 keeps the handler default.
	ConnectType int
}

// Backend builds pure-Go S7 clients. No native library is involved.
type Backend struct {
	Config Config
}

var _ plc.Backend = Backend{}

func (b Backend) NewLogo(string) (plc.LogoClient, error) {
	return nil, ErrLogoUnsupported
}

func (b Backend) NewS7(string) (plc.S7Client, error) {
	return &Client{cfg: b.Config}, nil
}

// Client implements plc.S7Client on top of a gos7 TCP handler.
type Client struct {
	cfg Config

	mu      sync.Mutex
	handler *gos7.TCPClientHandler
}

// connectFailed is the result code reported when the handshake fails.
// It never collides with success (0).
const connectFailed = -1

// Connect dials ip and runs the COTP/S7 setup. A handshake failure is
// reported as a non-zero code together with the cause.
func (c *Client) Connect(ip string, rack, slot int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler != nil {
		return connectFailed, errors.New("s7tcp: already connected")
	}

	port := c.cfg.Port
	if port <= 0 {
		port = DefaultPort
	}

	addr := net.JoinHostPort(ip, strconv.Itoa(port))

	var h *gos7.TCPClientHandler
	if c.cfg.ConnectType > 0 {
		h = gos7.NewTCPClientHandlerWithConnectType(addr, rack, slot, c.cfg.ConnectType)
	} else {
		h = gos7.NewTCPClientHandler(addr, rack, slot)
	}
	if c.cfg.Timeout > 0 {
		h.Timeout = c.cfg.Timeout
		h.IdleTimeout = c.cfg.Timeout
	}

	if err := h.Connect(); err != nil {
		return connectFailed, fmt.Errorf("s7tcp: connect %s rack=%d slot=%d: %w", ip, rack, slot, err)
	}

	c.handler = h
	return 0, nil
}

// Disconnect closes the TCP connection. Safe to call when never connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler == nil {
		return nil
	}
	err := c.handler.Close()
	c.handler = nil
	return err
}
