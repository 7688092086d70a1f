// internal/plc/snap7/bind.go

//go:build darwin || freebsd || linux || windows

package snap7

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// bind resolves every client symbol. purego panics on a missing symbol;
// that panic is turned into an error here.
func (l *Library) bind() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snap7: bind %s: %v", l.path, r)
		}
	}()

	purego.RegisterLibFunc(&l.cliCreate, l.handle, "Cli_Create")
	purego.RegisterLibFunc(&l.cliDestroy, l.handle, "Cli_Destroy")
	purego.RegisterLibFunc(&l.cliSetParam, l.handle, "Cli_SetParam")
	purego.RegisterLibFunc(&l.cliSetConnectionType, l.handle, "Cli_SetConnectionType")
	purego.RegisterLibFunc(&l.cliSetConnectionParams, l.handle, "Cli_SetConnectionParams")
	purego.RegisterLibFunc(&l.cliConnect, l.handle, "Cli_Connect")
	purego.RegisterLibFunc(&l.cliConnectTo, l.handle, "Cli_ConnectTo")
	purego.RegisterLibFunc(&l.cliDisconnect, l.handle, "Cli_Disconnect")

	return nil
}
