package cli

import (
	"github.com/spf13/cobra"
)

func segmentCmd(forceRetrain *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "segment",
		Short: "Cluster payers by behavior and rewrite the invoice cluster table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.clusterEngine(*forceRetrain).Execute(ctx)
			if err != nil {
				return err
			}
			rt.logger.Info("segment finished",
				"run_id", report.RunID,
				"outcome", report.Outcome,
				"rows", report.Rows,
				"persisted", report.Persisted,
				"anomalies", report.Anomalies,
				"trained", report.Trained,
			)
			return nil
		},
	}
}
