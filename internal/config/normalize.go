// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultTimeoutMs    = 5000
	DefaultARPTimeoutMs = 2000
	DefaultPollMs       = 60000
	DefaultRemotePort   = 102
	DefaultListen       = "127.0.0.1:8123"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Library.Backend == "" {
		cfg.Library.Backend = BackendSnap7
	}
	if cfg.Probe.TimeoutMs == 0 {
		cfg.Probe.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Probe.ARPTimeoutMs == 0 {
		cfg.Probe.ARPTimeoutMs = DefaultARPTimeoutMs
	}
	if cfg.Probe.RemotePort == 0 {
		cfg.Probe.RemotePort = DefaultRemotePort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultPollMs
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = DefaultListen
	}

	// Status timeout follows the probe timeout unless set.
	if cfg.Status.Enabled() && cfg.Status.TimeoutMs == 0 {
		cfg.Status.TimeoutMs = cfg.Probe.TimeoutMs
	}
}
