package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newPlanCmd creates the plan command
func newPlanCmd() *cobra.Command {
	var (
		showFiles bool
		fetch     bool
	)

	cmd := &cobra.Command{
		Use:   "plan [branch]",
		Short: "Show what landing a branch onto the baseline would involve",
		Long: `Show what landing a branch onto the baseline would involve.

Computes the merge base, the commits not yet on the baseline, how far the
baseline has moved, and which files both sides touched, then reports the
strategy the decision rules select. No branch is modified; --fetch only
refreshes remote-tracking refs first.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			sourceBranch := ""
			if len(args) > 0 {
				sourceBranch = args[0]
			}

			return actions.PlanAction(cmd.Context(), rc, actions.PlanOptions{
				SourceBranch: sourceBranch,
				ShowFiles:    showFiles,
				Fetch:        fetch,
			})
		},
	}

	cmd.Flags().BoolVar(&showFiles, "files", false, "List the files both sides touched")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch the remote before planning")

	return cmd
}
