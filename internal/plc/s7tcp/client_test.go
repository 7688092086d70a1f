// internal/plc/s7tcp/client_test.go
package s7tcp

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_LogoUnsupported(t *testing.T) {
	c, err := Backend{}.NewLogo("")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrLogoUnsupported)
}

func TestClient_ConnectRefused(t *testing.T) {
	// Grab a free port and close it so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s7, err := Backend{Config: Config{Port: port, Timeout: 500 * time.Millisecond}}.NewS7("")
	require.NoError(t, err)

	rc, err := s7.Connect("127.0.0.1", 0, 2)
	assert.Error(t, err)
	assert.NotEqual(t, 0, rc)
	assert.Contains(t, err.Error(), "rack=0 slot=2")

	assert.NoError(t, s7.Disconnect())
}

func TestClient_DisconnectWithoutConnect(t *testing.T) {
	c := &Client{cfg: Config{Port: 102}}
	assert.NoError(t, c.Disconnect())
	assert.NoError(t, c.Disconnect())
}
