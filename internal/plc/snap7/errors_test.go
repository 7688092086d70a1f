// internal/plc/snap7/errors_test.go
package snap7

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Text(t *testing.T) {
	e := &Error{Op: "connect", Code: errTCPConnectionTimeout}
	assert.Equal(t, "snap7: connect failed: tcp connection timeout (code 0x00000002)", e.Error())
	assert.True(t, e.Timeout())
	assert.Equal(t, uint16(2), e.ErrorCode())
}

func TestError_IsoAndClientCodes(t *testing.T) {
	iso := &Error{Op: "connect", Code: errIsoConnect}
	assert.Contains(t, iso.Error(), "iso connect failed")
	assert.False(t, iso.Timeout())
	assert.Equal(t, uint16(1), iso.ErrorCode())

	pdu := &Error{Op: "connect", Code: errCliNegotiatingPDU}
	assert.Contains(t, pdu.Error(), "pdu negotiation failed")
	assert.Equal(t, uint16(0x0010), pdu.ErrorCode())
}

func TestOpen_Failures(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)

	_, err = Open("/nonexistent/lib/linux_x86_64/libsnap7.so")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snap7: load")
}

func TestBackend_MissingLibrary(t *testing.T) {
	b := Backend{}

	logo, err := b.NewLogo("/nonexistent/libsnap7.so")
	assert.Nil(t, logo)
	assert.Error(t, err)

	s7, err := b.NewS7("/nonexistent/libsnap7.so")
	assert.Nil(t, s7)
	assert.Error(t, err)
}

func TestRelease_ZeroHandleIsNoop(t *testing.T) {
	c := &S7Client{}
	assert.NoError(t, c.Disconnect())

	rc, err := c.Connect("10.0.0.5", 0, 2)
	assert.Equal(t, 0, rc)
	assert.ErrorIs(t, err, errReleased)
}
