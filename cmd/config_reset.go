package cmd

import (
	"fmt"

	"xkcdd/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the active config profile to default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if err == config.ErrNoConfig {
			return fmt.Errorf("no config to reset, run `xkcdd config init` first")
		}
		if err != nil {
			return err
		}

		cfg := config.DefaultConfig()
		if err := config.SaveYAML(cfg, activePath); err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", activePath)
		cfg.Print()
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
