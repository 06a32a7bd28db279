package cmd

import (
	"xkcdd/internal/config"
	"xkcdd/internal/readme"
	"xkcdd/internal/ui"

	"github.com/spf13/cobra"
)

var flagReadmeOutput string

func init() {
	readmeCmd := &cobra.Command{
		Use:   "readme",
		Short: "Rewrite README.md with the most recently downloaded comic",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := config.LoadMerged(config.Options{
				IgnoreConfig: flagIgnoreConfig,
				Debug:        flagDebug,
				Output:       flagReadmeOutput,
			})
			if err != nil {
				return err
			}

			return readme.Update(cfg.Output, ui.NewLogger(cfg.Debug))
		},
	}

	readmeCmd.Flags().StringVar(&flagReadmeOutput, "output", "", "project root holding the data/ tree")

	rootCmd.AddCommand(readmeCmd)
}
