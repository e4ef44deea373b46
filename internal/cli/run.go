package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func runCmd(forceRetrain *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run both engines: risk scoring, then behavioral segmentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			// The engines are independent: a risk failure must not stop the
			// segmentation run, and vice versa. Both errors surface.
			var errs []error

			riskReport, err := rt.riskEngine(*forceRetrain).Execute(ctx)
			if err != nil {
				rt.logger.Error("risk engine failed", "error", err)
				errs = append(errs, err)
			} else {
				rt.logger.Info("risk engine finished",
					"run_id", riskReport.RunID,
					"outcome", riskReport.Outcome,
					"persisted", riskReport.Persisted,
				)
			}

			clusterReport, err := rt.clusterEngine(*forceRetrain).Execute(ctx)
			if err != nil {
				rt.logger.Error("cluster engine failed", "error", err)
				errs = append(errs, err)
			} else {
				rt.logger.Info("cluster engine finished",
					"run_id", clusterReport.RunID,
					"outcome", clusterReport.Outcome,
					"persisted", clusterReport.Persisted,
					"anomalies", clusterReport.Anomalies,
				)
			}

			return errors.Join(errs...)
		},
	}
}
