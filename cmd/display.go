package cmd

import (
	"fmt"
	"image/color"

	"xkcdd/internal/config"
	"xkcdd/internal/display"
	"xkcdd/internal/store"
	"xkcdd/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagDisplayOutput string
	flagDisplayOut    string
)

func init() {
	displayCmd := &cobra.Command{
		Use:   "display",
		Short: "Render a random cached comic as a 400x300 4-color e-paper frame",
		RunE:  runDisplay,
	}

	displayCmd.Flags().StringVar(&flagDisplayOutput, "output", "", "project root holding the data/ tree")
	displayCmd.Flags().StringVar(&flagDisplayOut, "out", "", "file the prepared frame is written to")

	rootCmd.AddCommand(displayCmd)
}

func runDisplay(cmd *cobra.Command, _ []string) error {
	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagDisplayOutput,
		DisplayOut:   flagDisplayOut,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)

	paths, err := store.AllImages(cfg.Output)
	if err != nil {
		return err
	}

	img, name, err := display.ChooseRandom(paths)
	if err != nil {
		return fmt.Errorf("no cached comics to display: %w", err)
	}
	fmt.Println("chose comic:", name)

	frame := display.Prepare(img)

	var panel display.Panel = &display.PNGPanel{Path: cfg.DisplayOut}
	panel.SetBorder(color.White)

	if err := panel.Render(frame); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	logSvc.Infof("Frame written to %s\n", cfg.DisplayOut)
	return nil
}
