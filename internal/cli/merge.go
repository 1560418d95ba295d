package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var (
		landingBranch string
		force         bool
		noBackup      bool
	)

	cmd := &cobra.Command{
		Use:   "merge [branch]",
		Short: "Land a branch with a single merge commit on a landing branch",
		Long: `Land a branch with a single merge commit on a landing branch.

The landing branch is cut from the baseline tip and the source branch is
merged into it with an explicit merge commit, keeping the source history
intact. This is the clean path when the baseline has not moved since the
merge base.`,
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

			return actions.MergeAction(cmd.Context(), rc, actions.MergeOptions{
				SourceBranch:  sourceBranch,
				LandingBranch: landingBranch,
				Force:         force,
				NoBackup:      noBackup,
			})
		},
	}

	cmd.Flags().StringVar(&landingBranch, "onto-branch", "", "Name for the landing branch (default landing/<branch>)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Recreate the landing branch if it already exists")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the safety tag for this landing")

	return cmd
}
