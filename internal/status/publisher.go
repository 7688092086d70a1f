// internal/status/publisher.go
package status

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// StatusWriter is the delivery contract the publisher drives.
type StatusWriter interface {
	WriteStatus(s Snapshot) error
}

// Publisher turns wizard outcomes into status snapshots.
// It owns the snapshot state; the writer only delivers it.
type Publisher struct {
	mu   sync.Mutex
	w    StatusWriter
	log  logrus.FieldLogger
	snap Snapshot
}

// NewPublisher writes the boot snapshot (full block) and returns the publisher.
// A failed boot write is logged, not returned: the block is re-asserted on
// the next successful write.
func NewPublisher(w StatusWriter, log logrus.FieldLogger) *Publisher {
	p := &Publisher{
		w:    w,
		log:  log,
		snap: Snapshot{Health: HealthUnknown},
	}
	if err := w.WriteStatus(p.snap); err != nil {
		log.WithError(err).Warn("status write failed on start")
	}
	return p
}

// Snapshot returns the current state.
func (p *Publisher) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Observe is a wizard.Observer.
func (p *Publisher) Observe(o wizard.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := p.snap
	snap.Family = familyCode(o.Family)

	switch o.Kind {
	case wizard.Connected:
		// Recovery: reset error state.
		snap.Health = HealthConnected
		snap.LastResultCode = 0
		snap.ConsecutiveFailures = 0
		snap.DeviceID = ""
		if o.Record != nil {
			snap.DeviceID = o.Record.ID
		}

	case wizard.ConnectionFailed:
		snap.Health = HealthConnectionFailed
		snap.LastResultCode = errorCode(o.Err)
		// HARD INVARIANT: failure counter MUST NOT wrap
		if snap.ConsecutiveFailures < 65535 {
			snap.ConsecutiveFailures++
		}
		snap.DeviceID = ""

	case wizard.ValidationFailed:
		// Nothing was probed; the failure counter is left alone.
		snap.Health = HealthValidationFailed
		snap.DeviceID = ""
	}

	if snap == p.snap {
		return
	}
	p.snap = snap

	if err := p.w.WriteStatus(snap); err != nil {
		p.log.WithError(err).WithField("family", o.Family).Error("status write failed")
	}
}

func familyCode(f wizard.Family) uint16 {
	switch f {
	case wizard.FamilyLogo:
		return FamilyLogo
	case wizard.FamilyS7:
		return FamilyS7
	}
	return FamilyNone
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return 1
}
