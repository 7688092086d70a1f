// cmd/siemensplc/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tamzrod/siemens-plc/internal/httpapi"
	"github.com/tamzrod/siemens-plc/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configuration wizard over HTTP",
	Long:  `Exposes the wizard as a JSON API for a host application, plus Prometheus metrics.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Override http.listen (host:port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, statusAdHoc)
	if err != nil {
		return err
	}
	defer a.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	probe, err := metrics.NewProbe(reg)
	if err != nil {
		return err
	}
	a.wizard.Observe(probe.Observe)

	handler := a.httpHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	addr := a.cfg.HTTP.Listen
	if l, _ := cmd.Flags().GetString("listen"); l != "" {
		addr = l
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		a.log.WithField("addr", srv.Addr).Info("serving wizard")
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-shutdown:
		a.log.WithField("signal", sig.String()).Info("shutting down")

		// Give outstanding probes a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			a.log.WithError(err).Warn("graceful shutdown did not complete")
			return srv.Close()
		}
		return nil
	}
}

// httpHandler serves the wizard. /platform reports on the library the
// selected backend loads, not on snap7 unconditionally.
func (a *app) httpHandler(metricsHandler http.Handler) http.Handler {
	return httpapi.NewHandler(&httpapi.Server{
		Wizard:   a.wizard,
		Platform: a.locator.Platform,
		Locate:   a.library,
		Metrics:  metricsHandler,
		Log:      a.log.WithField("component", "http"),
	})
}
