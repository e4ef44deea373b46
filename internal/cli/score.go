package cli

import (
	"github.com/spf13/cobra"
)

func scoreCmd(forceRetrain *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Score every invoice in the risk view and rewrite the predictions table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.riskEngine(*forceRetrain).Execute(ctx)
			if err != nil {
				return err
			}
			rt.logger.Info("score finished",
				"run_id", report.RunID,
				"outcome", report.Outcome,
				"rows", report.Rows,
				"persisted", report.Persisted,
				"trained", report.Trained,
			)
			return nil
		},
	}
}
