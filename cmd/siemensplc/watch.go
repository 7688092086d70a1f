// cmd/siemensplc/watch.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tamzrod/siemens-plc/internal/poller"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-probe the configured devices on an interval",
	Long: `Probes every device in the config file once per poll.interval_ms and logs
the result. Each device with a status_slot gets its own status block.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("interval", 0, "Override poll.interval_ms")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, statusDevices)
	if err != nil {
		return err
	}
	defer a.Close()

	if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
		a.cfg.Poll.IntervalMs = int(d / time.Millisecond)
	}

	p, err := poller.Build(a.cfg, a.wizard)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := make(chan poller.PollResult)
	go p.Run(ctx, out)

	a.log.WithFields(logrus.Fields{
		"devices":  len(a.cfg.Devices),
		"interval": millis(a.cfg.Poll.IntervalMs).String(),
	}).Info("watching devices")

	for {
		select {
		case <-ctx.Done():
			a.log.Info("watch stopped")
			return nil

		case res := <-out:
			for i, o := range res.Outcomes {
				a.publish(res.Devices[i], o)
			}

			entry := a.log.WithFields(logrus.Fields{
				"devices": len(res.Outcomes),
				"failed":  res.Failed(),
			})
			if res.Failed() > 0 {
				entry.Warn("poll cycle finished with failures")
				continue
			}
			entry.Info("poll cycle finished")
		}
	}
}
