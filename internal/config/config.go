// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Library LibraryConfig  `yaml:"library"`
	Probe   ProbeConfig    `yaml:"probe"`
	Log     LogConfig      `yaml:"log"`
	HTTP    HTTPConfig     `yaml:"http"`
	Status  StatusConfig   `yaml:"status"`
	Poll    PollConfig     `yaml:"poll"`
	Devices []DeviceConfig `yaml:"devices"`
}

// ---- NATIVE LIBRARY ----

type LibraryConfig struct {
	// Dir overrides the installation directory the lib/ tree lives under.
	Dir string `yaml:"dir"`
	// Backend is "snap7" (native library) or "gos7" (pure Go, S7 only).
	Backend string `yaml:"backend"`
}

const (
	BackendSnap7 = "snap7"
	BackendGoS7  = "gos7"
)

// ---- PROBE ----

type ProbeConfig struct {
	TimeoutMs      int    `yaml:"timeout_ms"`
	RemotePort     int    `yaml:"remote_port"`
	ConnectionType uint16 `yaml:"connection_type"` // 0 = library default
	ARPTimeoutMs   int    `yaml:"arp_timeout_ms"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ---- HTTP ----

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

// ---- STATUS BLOCK (optional, opt-in) ----

type StatusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	Slot      uint16 `yaml:"slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Enabled reports whether probe outcomes are published over Modbus.
func (s StatusConfig) Enabled() bool {
	return s.Endpoint != ""
}

// ---- POLL ----

// PollConfig drives the periodic re-probe of the configured devices.
type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- DEVICES ----

// DeviceConfig is one pre-declared submission for batch probing.
// Rack and Slot are pointers so a missing value is distinguishable from 0.
// StatusSlot gives the device its own status block on the status endpoint.
type DeviceConfig struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	IP         string  `yaml:"ip"`
	LocalTSAP  string  `yaml:"local_tsap"`
	RemoteTSAP string  `yaml:"remote_tsap"`
	Rack       *int    `yaml:"rack"`
	Slot       *int    `yaml:"slot"`
	StatusSlot *uint16 `yaml:"status_slot"`
}

// Form returns the device as host form values.
func (d DeviceConfig) Form() map[string]any {
	form := map[string]any{
		"ip": d.IP,
	}
	if d.Name != "" {
		form["name"] = d.Name
	}
	if d.LocalTSAP != "" {
		form["local_tsap"] = d.LocalTSAP
	}
	if d.RemoteTSAP != "" {
		form["remote_tsap"] = d.RemoteTSAP
	}
	if d.Rack != nil {
		form["rack"] = *d.Rack
	}
	if d.Slot != nil {
		form["slot"] = *d.Slot
	}
	return form
}

// Load reads, validates and normalizes a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(raw)
}

// Parse is Load without the file read.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Default is the config used when no file is given.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}
