package main

import (
	"errors"

	"github.com/couchcryptid/rescuebot/internal/adapter/console"
	"github.com/couchcryptid/rescuebot/internal/adapter/logfile"
	"github.com/couchcryptid/rescuebot/internal/pipeline"
	"github.com/spf13/cobra"
)

var judgeCmd = &cobra.Command{
	Use:   "judge",
	Short: "Judge scenarios yourself",
	Long: `Presents each scenario and asks which location to rescue. A report is printed
every RESCUEBOT_REPORT_EVERY scenarios, after which you may stop. With your
consent, decisions are appended to the user log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.flush()

		ctx := cmd.Context()
		operator := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
		if !operator.Interactive() {
			a.logger.Info("stdin is not a terminal, reading answers line by line")
		}

		consent, err := operator.Consent(ctx)
		if err != nil {
			return err
		}
		var rec pipeline.Recorder
		if consent {
			rec = logfile.NewWriter(a.cfg.UserLogPath, false)
		}

		scenarios, err := a.scenarios()
		if err != nil {
			return err
		}

		r := pipeline.NewRunner(pipeline.Options{
			Mode:        pipeline.ModeInteractive,
			Judge:       operator,
			Recorder:    rec,
			Out:         cmd.OutOrStdout(),
			ReportEvery: a.cfg.ReportEvery,
			Proceed:     operator.Proceed,
			Logger:      a.logger,
			Metrics:     a.metrics,
		})
		sum, err := r.Run(ctx, scenarios)
		if errors.Is(err, console.ErrInputClosed) {
			a.logger.Info("input closed, ending session", "judged", sum.Judged)
			return r.Session().Render(cmd.OutOrStdout(), sum.Judged)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(judgeCmd)
}
