// internal/status/modbus/client_test.go
package modbus

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRegisters_BigEndian(t *testing.T) {
	assert.Equal(t, []byte{0x12, 0x34, 0x00, 0xFF}, packRegisters([]uint16{0x1234, 0x00FF}))
	assert.Empty(t, packRegisters(nil))
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	_, err := NewEndpointClient(Config{})
	assert.Error(t, err)
}

func TestNewEndpointClient_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewEndpointClient(Config{Endpoint: addr, Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestWriteRegisters_Empty(t *testing.T) {
	c := &EndpointClient{}
	assert.Error(t, c.WriteRegisters(1, 0, nil))
}
