package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the fidics command tree.
func NewRootCmd() *cobra.Command {
	var forceRetrain bool

	root := &cobra.Command{
		Use:           "fidics",
		Short:         "Risk scoring and behavioral segmentation for fund receivables",
		Long: `fidics runs the batch engines of the receivables fund datamart:

  score    default-probability scoring per invoice, with band and justification
  segment  behavioral clustering per payer, with anomaly flagging
  run      both engines, risk first

Configuration comes from FIDICS_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&forceRetrain, "force-retrain", false,
		"retrain and overwrite the persisted model even when one exists")

	root.AddCommand(
		scoreCmd(&forceRetrain),
		segmentCmd(&forceRetrain),
		runCmd(&forceRetrain),
	)
	return root
}
