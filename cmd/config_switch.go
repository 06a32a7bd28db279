package cmd

import (
	"fmt"

	"xkcdd/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different config profile (e.g. one per frame)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			picked, err := pickProfile()
			if err != nil {
				return err
			}
			label = picked
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Now using profile:", label)
		return nil
	},
}

// pickProfile offers an interactive selection over the known profiles,
// marking the one currently active.
func pickProfile() (string, error) {
	list, err := config.ListConfigs()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no config profiles found, run `xkcdd config init` first")
	}

	items := make([]string, 0, len(list))
	for _, c := range list {
		if c.Active {
			items = append(items, c.Label+"  (active)")
		} else {
			items = append(items, c.Label)
		}
	}

	prompt := promptui.Select{
		Label: "Select profile",
		Items: items,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled")
	}

	return list[idx].Label, nil
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
