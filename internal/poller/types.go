// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// Target is one device to re-probe.
// Form values only: no semantics.
type Target struct {
	Name   string
	Family wizard.Family
	Form   map[string]any
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At time.Time

	// Outcomes are in Target order.
	Outcomes []wizard.Outcome

	// Devices[i] is the Target name Outcomes[i] belongs to.
	Devices []string
}

// Failed counts outcomes that did not connect.
func (r PollResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind != wizard.Connected {
			n++
		}
	}
	return n
}
