// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/siemens-plc/internal/config"
	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// Build constructs a Poller over the configured devices.
// Device fields are not checked here: each cycle reports them through the wizard.
func Build(c *cfg.Config, sub Submitter) (*Poller, error) {
	targets := make([]Target, 0, len(c.Devices))
	for i, d := range c.Devices {
		family, err := wizard.ParseFamily(d.Type)
		if err != nil {
			return nil, fmt.Errorf("devices[%d]: %w", i, err)
		}
		targets = append(targets, Target{
			Name:   d.Name,
			Family: family,
			Form:   d.Form(),
		})
	}

	return New(
		Config{
			Interval: time.Duration(c.Poll.IntervalMs) * time.Millisecond,
			Targets:  targets,
		},
		sub,
	)
}
