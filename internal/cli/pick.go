package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newPickCmd creates the pick command
func newPickCmd() *cobra.Command {
	var (
		shas          []string
		all           bool
		landingBranch string
		force         bool
		noBackup      bool
		noAnnotate    bool
	)

	cmd := &cobra.Command{
		Use:   "pick [branch]",
		Short: "Cherry-pick a branch's commits onto a landing branch cut from the baseline",
		Long: `Cherry-pick a branch's commits onto a landing branch cut from the baseline.

Without --sha the planned unique commits are offered in an interactive
selection, oldest first. Each landed commit is annotated with the source
commit it came from. Conflicts pause after the failing pick; resolved and
queued commits are tracked so 'regraft continue' finishes the set.`,
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

			return actions.PickAction(cmd.Context(), rc, actions.PickOptions{
				SourceBranch:  sourceBranch,
				SHAs:          shas,
				All:           all,
				LandingBranch: landingBranch,
				Force:         force,
				NoBackup:      noBackup,
				NoAnnotate:    noAnnotate,
			})
		},
	}

	cmd.Flags().StringSliceVar(&shas, "sha", nil, "Commit to pick (repeatable, oldest first)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Pick every planned commit without prompting")
	cmd.Flags().StringVar(&landingBranch, "onto-branch", "", "Name for the landing branch (default landing/<branch>)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Recreate the landing branch if it already exists")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the safety tag for this landing")
	cmd.Flags().BoolVar(&noAnnotate, "no-annotate", false, "Do not append the source commit reference to picked commits")

	return cmd
}
