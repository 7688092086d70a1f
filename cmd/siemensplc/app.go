// cmd/siemensplc/app.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/siemens-plc/internal/config"
	"github.com/tamzrod/siemens-plc/internal/logging"
	"github.com/tamzrod/siemens-plc/internal/netid"
	"github.com/tamzrod/siemens-plc/internal/platform"
	"github.com/tamzrod/siemens-plc/internal/plc"
	"github.com/tamzrod/siemens-plc/internal/plc/s7tcp"
	"github.com/tamzrod/siemens-plc/internal/plc/snap7"
	"github.com/tamzrod/siemens-plc/internal/status"
	statusmodbus "github.com/tamzrod/siemens-plc/internal/status/modbus"
	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// app is everything a command needs, wired from config.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	locator *platform.Locator
	library wizard.LibraryFunc
	wizard  *wizard.Wizard
	board   *status.Board
	closers []func() error
}

// statusScope picks which status blocks a command feeds.
type statusScope int

const (
	// statusAdHoc feeds status.slot from every wizard outcome.
	statusAdHoc statusScope = iota
	// statusDevices feeds each devices[].status_slot from that device's outcomes.
	statusDevices
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newApp(cmd *cobra.Command, scope statusScope) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	loc, err := platform.NewLocator(cfg.Library.Dir)
	if err != nil {
		return nil, fmt.Errorf("install dir: %w", err)
	}

	library, backend := selectBackend(cfg, loc)

	wz, err := wizard.New(wizard.Deps{
		Library:  library,
		Backend:  backend,
		Resolver: &netid.ARPTable{Timeout: millis(cfg.Probe.ARPTimeoutMs)},
		Log:      log.WithField("component", "wizard"),
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, locator: loc, library: library, wizard: wz}

	log.WithFields(logrus.Fields{
		"platform": loc.Platform.String(),
		"backend":  cfg.Library.Backend,
	}).Debug("wizard ready")

	if cfg.Status.Enabled() {
		if err := a.attachStatus(scope); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

// selectBackend picks the client implementation. The gos7 backend needs
// no native library, so its locator always succeeds with an empty path.
func selectBackend(cfg *config.Config, loc *platform.Locator) (wizard.LibraryFunc, plc.Backend) {
	timeout := millis(cfg.Probe.TimeoutMs)

	if cfg.Library.Backend == config.BackendGoS7 {
		return func() (string, error) { return "", nil },
			s7tcp.Backend{Config: s7tcp.Config{
				Port:        cfg.Probe.RemotePort,
				Timeout:     timeout,
				ConnectType: int(cfg.Probe.ConnectionType),
			}}
	}

	return loc.Path, snap7.Backend{Options: snap7.Options{
		Timeout:        timeout,
		RemotePort:     cfg.Probe.RemotePort,
		ConnectionType: cfg.Probe.ConnectionType,
	}}
}

func (a *app) attachStatus(scope statusScope) error {
	sc := a.cfg.Status

	cli, err := statusmodbus.NewEndpointClient(statusmodbus.Config{
		Endpoint: sc.Endpoint,
		Timeout:  millis(sc.TimeoutMs),
	})
	if err != nil {
		return fmt.Errorf("status endpoint %s: %w", sc.Endpoint, err)
	}
	a.closers = append(a.closers, cli.Close)

	log := a.log.WithFields(logrus.Fields{
		"component": "status",
		"endpoint":  sc.Endpoint,
	})

	if scope == statusDevices {
		a.board, err = buildBoard(a.cfg, cli, log)
		return err
	}

	w, err := status.NewWriter(cli, sc.UnitID, sc.Slot)
	if err != nil {
		return err
	}
	pub := status.NewPublisher(w, log)
	a.wizard.Observe(pub.Observe)
	return nil
}

// buildBoard gives every device with a status_slot its own block on cli.
func buildBoard(cfg *config.Config, cli status.EndpointClient, log logrus.FieldLogger) (*status.Board, error) {
	b := status.NewBoard()
	for _, d := range cfg.Devices {
		if d.StatusSlot == nil {
			continue
		}
		if err := b.AddBlock(d.Name, cli, cfg.Status.UnitID, *d.StatusSlot, log); err != nil {
			return nil, err
		}
	}
	log.WithField("blocks", len(b.Devices())).Debug("device status blocks ready")
	return b, nil
}

// publish routes a device outcome to its status block, if it has one.
func (a *app) publish(device string, out wizard.Outcome) {
	if a.board == nil {
		return
	}
	a.board.Publish(device, out)
}

// Close releases app resources in reverse order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.WithError(err).Warn("close failed")
		}
	}
	a.closers = nil
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
