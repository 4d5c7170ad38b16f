package main

import (
	"github.com/couchcryptid/rescuebot/internal/adapter/logfile"
	"github.com/couchcryptid/rescuebot/internal/pipeline"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Judge every scenario with the decision engine",
	Long: `Runs a simulation: each scenario is judged by the decision engine, appended to
the simulation log, and a statistics report is printed at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.flush()

		scenarios, err := a.scenarios()
		if err != nil {
			return err
		}

		r := pipeline.NewRunner(pipeline.Options{
			Mode:     pipeline.ModeSimulation,
			Judge:    pipeline.EngineJudge,
			Recorder: logfile.NewWriter(a.cfg.SimulationLogPath, true),
			Out:      cmd.OutOrStdout(),
			Logger:   a.logger,
			Metrics:  a.metrics,
		})
		_, err = r.Run(cmd.Context(), scenarios)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
