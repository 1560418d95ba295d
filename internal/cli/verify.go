package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newVerifyCmd creates the verify command
func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [branch]",
		Short: "Check that the landing matches what the branch carried",
		Long: `Check that the landing matches what the branch carried.

Range-diffs the source range against the landed range and cross-checks
patch ids, so commits that were modified while landing are called out
before anything is pushed. Exits non-zero when the two differ.`,
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

			return actions.VerifyAction(cmd.Context(), rc, actions.VerifyOptions{
				SourceBranch: sourceBranch,
			})
		},
	}

	return cmd
}
