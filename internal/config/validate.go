// internal/config/validate.go
package config

import (
	"fmt"
	"net"

	"github.com/tamzrod/siemens-plc/internal/status"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Device field contents (ip, tsap, rack, slot) are NOT checked here:
// the wizard reports those per field when the device is probed.
func Validate(cfg *Config) error {
	// ------------------------------------------------------------
	// LIBRARY / PROBE
	// ------------------------------------------------------------

	switch cfg.Library.Backend {
	case "", BackendSnap7, BackendGoS7:
	default:
		return fmt.Errorf("library.backend: unknown backend %q (want %s or %s)",
			cfg.Library.Backend, BackendSnap7, BackendGoS7)
	}

	if cfg.Probe.TimeoutMs < 0 {
		return fmt.Errorf("probe.timeout_ms: must be >= 0, got %d", cfg.Probe.TimeoutMs)
	}
	if cfg.Probe.ARPTimeoutMs < 0 {
		return fmt.Errorf("probe.arp_timeout_ms: must be >= 0, got %d", cfg.Probe.ARPTimeoutMs)
	}
	if cfg.Probe.RemotePort < 0 || cfg.Probe.RemotePort > 65535 {
		return fmt.Errorf("probe.remote_port: out of range: %d", cfg.Probe.RemotePort)
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}

	// ------------------------------------------------------------
	// HTTP
	// ------------------------------------------------------------

	if cfg.HTTP.Listen != "" {
		if _, _, err := net.SplitHostPort(cfg.HTTP.Listen); err != nil {
			return fmt.Errorf("http.listen: %w", err)
		}
	}

	// ------------------------------------------------------------
	// STATUS BLOCK (OPT-IN)
	// ------------------------------------------------------------

	if cfg.Status.Enabled() {
		if _, _, err := net.SplitHostPort(cfg.Status.Endpoint); err != nil {
			return fmt.Errorf("status.endpoint: %w", err)
		}
		if cfg.Status.TimeoutMs < 0 {
			return fmt.Errorf("status.timeout_ms: must be >= 0, got %d", cfg.Status.TimeoutMs)
		}
		if cfg.Status.Slot > status.MaxBaseSlot {
			return fmt.Errorf("status.slot: out of range: %d (max %d)", cfg.Status.Slot, status.MaxBaseSlot)
		}
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll.interval_ms: must be >= 0, got %d", cfg.Poll.IntervalMs)
	}

	// ------------------------------------------------------------
	// DEVICES
	// ------------------------------------------------------------

	names := make(map[string]int)

	// GLOBAL status slot ownership
	// key = endpoint|status_unit_id|status_slot
	statusOwner := make(map[string]string)
	if cfg.Status.Enabled() {
		key := fmt.Sprintf("%s|%d|%d", cfg.Status.Endpoint, cfg.Status.UnitID, cfg.Status.Slot)
		statusOwner[key] = "status.slot"
	}

	for i, d := range cfg.Devices {
		switch d.Type {
		case "logo", "s7":
		default:
			return fmt.Errorf("devices[%d]: unknown type %q", i, d.Type)
		}

		if d.StatusSlot != nil {
			if !cfg.Status.Enabled() {
				return fmt.Errorf("devices[%d]: status_slot is set but status.endpoint is empty", i)
			}
			if d.Name == "" {
				return fmt.Errorf("devices[%d]: status_slot requires a name", i)
			}
			if *d.StatusSlot > status.MaxBaseSlot {
				return fmt.Errorf("devices[%d]: status_slot out of range: %d (max %d)", i, *d.StatusSlot, status.MaxBaseSlot)
			}

			key := fmt.Sprintf("%s|%d|%d", cfg.Status.Endpoint, cfg.Status.UnitID, *d.StatusSlot)
			owner := fmt.Sprintf("devices[%d] %q", i, d.Name)
			if prev, exists := statusOwner[key]; exists {
				return fmt.Errorf(
					"status_slot collision: endpoint=%s status_unit_id=%d slot=%d used by %s and %s",
					cfg.Status.Endpoint, cfg.Status.UnitID, *d.StatusSlot, prev, owner,
				)
			}
			statusOwner[key] = owner
		}

		if d.Name == "" {
			continue
		}
		if prev, exists := names[d.Name]; exists {
			return fmt.Errorf("devices[%d]: name %q already used by devices[%d]", i, d.Name, prev)
		}
		names[d.Name] = i
	}

	return nil
}
