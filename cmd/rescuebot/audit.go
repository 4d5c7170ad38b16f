package main

import (
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report statistics over past decisions",
	Long:  `Re-reads the user and simulation logs and prints one report per origin.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.flush()

		return a.loader.Audit(cmd.OutOrStdout(), a.cfg.UserLogPath, a.cfg.SimulationLogPath)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
