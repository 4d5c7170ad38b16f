package main

import (
	"errors"

	"github.com/couchcryptid/rescuebot/internal/adapter/yamlexport"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the assembled scenarios as YAML",
	Long: `Parses a scenario file the same way judge and run do, and prints the resulting
tree with each location's score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.flush()

		if len(args) == 1 {
			a.cfg.ScenariosFile = args[0]
		}
		if a.cfg.ScenariosFile == "" {
			return errors.New("no scenario file given")
		}

		scenarios, err := a.scenarios()
		if err != nil {
			return err
		}
		return yamlexport.Write(cmd.OutOrStdout(), scenarios)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
