package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [branch]",
		Short: "List a branch's commits and how far each has landed",
		Long: `List a branch's commits and how far each has landed.

Every commit past the merge base is shown with a mark: already on the
baseline (by patch equivalence), staged on the landing branch, or still
pending.`,
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

			return actions.LogAction(cmd.Context(), rc, actions.LogOptions{
				SourceBranch: sourceBranch,
			})
		},
	}

	return cmd
}
