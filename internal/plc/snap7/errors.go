// internal/plc/snap7/errors.go
package snap7

import "fmt"

// snap7 error code families. TCP errors live in the low word,
// ISO errors in the second nibble of the high word, client errors above.
const (
	errTCPConnectionTimeout = 0x00000002
	errTCPConnectionFailed  = 0x00000003
	errTCPReceiveTimeout    = 0x00000004
	errTCPSendTimeout       = 0x00000006
	errTCPConnectionReset   = 0x00000008
	errTCPNotConnected      = 0x00000009
	errTCPUnreachableHost   = 0x00002751

	errIsoMask    = 0x000F0000
	errIsoConnect = 0x00010000

	errCliMask           = 0xFFF00000
	errCliNegotiatingPDU = 0x00100000
)

// Error is a non-zero snap7 result code.
type Error struct {
	Op   string
	Code int32
}

func (e *Error) Error() string {
	return fmt.Sprintf("snap7: %s failed: %s (code 0x%08X)", e.Op, codeText(e.Code), uint32(e.Code))
}

// ErrorCode folds the code into 16 bits: the TCP word when set,
// otherwise the ISO/client word.
func (e *Error) ErrorCode() uint16 {
	c := uint32(e.Code)
	if lo := uint16(c & 0xFFFF); lo != 0 {
		return lo
	}
	return uint16(c >> 16)
}

// Timeout reports whether the code is one of the TCP timeouts.
func (e *Error) Timeout() bool {
	switch uint32(e.Code) & 0xFFFF {
	case errTCPConnectionTimeout, errTCPReceiveTimeout, errTCPSendTimeout:
		return true
	}
	return false
}

func codeText(code int32) string {
	c := uint32(code)

	switch c & 0xFFFF {
	case errTCPConnectionTimeout:
		return "tcp connection timeout"
	case errTCPConnectionFailed:
		return "tcp connection failed"
	case errTCPReceiveTimeout:
		return "tcp receive timeout"
	case errTCPSendTimeout:
		return "tcp send timeout"
	case errTCPConnectionReset:
		return "tcp connection reset"
	case errTCPNotConnected:
		return "tcp not connected"
	case errTCPUnreachableHost:
		return "tcp unreachable host"
	}

	if c&errIsoMask == errIsoConnect {
		return "iso connect failed"
	}
	if c&errCliMask == errCliNegotiatingPDU {
		return "pdu negotiation failed"
	}
	return "unknown error"
}
