// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// Submitter runs one wizard step. Observers attached to it see every
// poll outcome.
type Submitter interface {
	Submit(family wizard.Family, form map[string]any) wizard.Outcome
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
	Targets  []Target
}

// Poller is a dumb, clock-driven re-prober.
type Poller struct {
	cfg Config
	sub Submitter
}

// New creates a poller with immutable config.
func New(cfg Config, sub Submitter) (*Poller, error) {
	if sub == nil {
		return nil, errors.New("poller: submitter required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Targets) == 0 {
		return nil, errors.New("poller: at least one target required")
	}
	return &Poller{cfg: cfg, sub: sub}, nil
}

// PollOnce probes every target exactly once, in order.
// A failed target does not stop the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{
		At:       time.Now(),
		Outcomes: make([]wizard.Outcome, 0, len(p.cfg.Targets)),
		Devices:  make([]string, 0, len(p.cfg.Targets)),
	}

	for _, t := range p.cfg.Targets {
		res.Outcomes = append(res.Outcomes, p.sub.Submit(t.Family, t.Form))
		res.Devices = append(res.Devices, t.Name)
	}

	return res
}
