// internal/plc/client.go
package plc

// LogoClient is the connect/disconnect surface of a Logo! client.
// Connect returning nil is the library's success sentinel.
type LogoClient interface {
	Connect(ip string, localTSAP, remoteTSAP uint16) error
	Disconnect() error
}

// S7Client is the connect/disconnect surface of an S7 client.
// Connect returns the library's raw result code; 0 means connected.
// A non-nil error is a fault raised before a code was produced.
type S7Client interface {
	Connect(ip string, rack, slot int) (int, error)
	Disconnect() error
}

// Backend builds probe clients bound to a native library path.
// Backends that need no native library ignore libPath.
type Backend interface {
	NewLogo(libPath string) (LogoClient, error)
	NewS7(libPath string) (S7Client, error)
}
