package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newFilesCmd creates the files command
func newFilesCmd() *cobra.Command {
	var (
		sourceBranch  string
		landingBranch string
		force         bool
		noBackup      bool
	)

	cmd := &cobra.Command{
		Use:   "files <path>...",
		Short: "Land whole files from a branch without their history",
		Long: `Land whole files from a branch without their history.

The given paths (git pathspecs work, e.g. 'src/api/*') are checked out of
the source branch onto a landing branch cut from the baseline and committed
in one go. The commit message references the source revision so the origin
stays traceable.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return actions.FilesAction(cmd.Context(), rc, actions.FilesOptions{
				SourceBranch:  sourceBranch,
				Paths:         args,
				LandingBranch: landingBranch,
				Force:         force,
				NoBackup:      noBackup,
			})
		},
	}

	cmd.Flags().StringVarP(&sourceBranch, "from", "s", "", "Branch to take the files from (default the checked-out branch)")
	cmd.Flags().StringVar(&landingBranch, "onto-branch", "", "Name for the landing branch (default landing/<branch>)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Recreate the landing branch if it already exists")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the safety tag for this landing")
	_ = cmd.RegisterFlagCompletionFunc("from", completeBranches)

	return cmd
}
