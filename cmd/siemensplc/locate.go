// cmd/siemensplc/locate.go
package main

import (
	"github.com/spf13/cobra"

	"github.com/tamzrod/siemens-plc/internal/platform"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the snap7 library path for this platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		loc, err := platform.NewLocator(cfg.Library.Dir)
		if err != nil {
			return err
		}

		path, err := loc.Path()
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		return printResult(cmd.OutOrStdout(), struct {
			platform.Descriptor `yaml:",inline"`
			Library             string `json:"library" yaml:"library"`
		}{loc.Platform, path}, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
