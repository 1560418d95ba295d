package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newSubmitCmd creates the submit command
func newSubmitCmd() *cobra.Command {
	var (
		title string
		draft bool
		force bool
		noPR  bool
	)

	cmd := &cobra.Command{
		Use:   "submit [branch]",
		Short: "Push the landing branch and open or refresh its pull request",
		Long: `Push the landing branch and open or refresh its pull request.

The landing branch is pushed with an upstream set; --force uses
force-with-lease for branches that were recreated. When a GitHub token is
available (GITHUB_TOKEN or gh auth token) a pull request against the
baseline is created, or the existing one's body is refreshed with the
landing provenance and verification summary.`,
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

			return actions.SubmitAction(cmd.Context(), rc, actions.SubmitOptions{
				SourceBranch: sourceBranch,
				Title:        title,
				Draft:        draft,
				Force:        force,
				NoPR:         noPR,
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Pull request title (default 'Land <branch> onto <baseline>')")
	cmd.Flags().BoolVarP(&draft, "draft", "d", false, "Open the pull request as a draft")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Push with force-with-lease")
	cmd.Flags().BoolVar(&noPR, "no-pr", false, "Push only; do not touch pull requests")

	return cmd
}
