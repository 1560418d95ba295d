package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newReplayCmd creates the replay command
func newReplayCmd() *cobra.Command {
	var (
		landingBranch  string
		force          bool
		noBackup       bool
		preserveMerges bool
	)

	cmd := &cobra.Command{
		Use:   "replay [branch]",
		Short: "Rebase a branch's unique commits onto the baseline under a landing branch",
		Long: `Rebase a branch's unique commits onto the baseline under a landing branch.

The whole range past the merge base is replayed onto the baseline tip on a
separate landing branch. The source branch itself never moves. Conflicts
pause the replay; 'regraft continue' resumes it.`,
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

			return actions.ReplayAction(cmd.Context(), rc, actions.ReplayOptions{
				SourceBranch:   sourceBranch,
				LandingBranch:  landingBranch,
				Force:          force,
				NoBackup:       noBackup,
				PreserveMerges: preserveMerges,
			})
		},
	}

	cmd.Flags().StringVar(&landingBranch, "onto-branch", "", "Name for the landing branch (default landing/<branch>)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Recreate the landing branch if it already exists")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the safety tag for this landing")
	cmd.Flags().BoolVar(&preserveMerges, "preserve-merges", false, "Recreate merge commits instead of flattening them")

	return cmd
}
