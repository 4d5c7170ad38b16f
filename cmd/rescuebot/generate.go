package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/rescuebot/internal/adapter/logfile"
	"github.com/couchcryptid/rescuebot/internal/random"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write random scenarios in the scenario file format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.flush()

		count, _ := cmd.Flags().GetInt("count")
		out, _ := cmd.Flags().GetString("out")
		seed := a.cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetUint64("seed")
		}

		scenarios := random.New(seed).Scenarios(count)

		w := cmd.OutOrStdout()
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := logfile.Encode(w, scenarios); err != nil {
			return err
		}
		a.logger.Info("scenarios generated", "scenarios", len(scenarios), "out", out)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("count", "n", 0, "number of scenarios (3 to 10 at random when 0)")
	generateCmd.Flags().StringP("out", "o", "", "output file (stdout when empty)")
	generateCmd.Flags().Uint64("seed", 0, "generator seed (overrides RESCUEBOT_SEED)")
	rootCmd.AddCommand(generateCmd)
}
