// cmd/siemensplc/root.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "siemensplc",
	Short: "Set up connections to Siemens Logo! and S7 PLCs",
	Long: `siemensplc validates PLC connection parameters, probes the device once
through the snap7 client library and prints the resulting configuration entry.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file (defaults apply when omitted)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log.level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON instead of YAML")
}
