package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newContinueCmd creates the continue command
func newContinueCmd() *cobra.Command {
	var addAll bool

	cmd := &cobra.Command{
		Use:   "continue",
		Short: "Resume the landing halted by a conflict",
		Long: `Resume the landing halted by a conflict.

Requires every conflict to be resolved and staged first. The interrupted
git operation is continued, any still-queued commits are applied, and the
session is finished once everything has landed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return actions.ContinueAction(cmd.Context(), rc, actions.ContinueOptions{
				StageAll: addAll,
			})
		},
	}

	cmd.Flags().BoolVarP(&addAll, "all", "a", false, "Stage all changes before continuing")

	return cmd
}
