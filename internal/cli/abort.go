package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newAbortCmd creates the abort command
func newAbortCmd() *cobra.Command {
	var (
		restore bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "abort",
		Short: "Cancel the landing in progress",
		Long: `Cancel the landing in progress.

Aborts whatever git operation is mid-flight, deletes the landing branch
and its metadata, and returns to the branch that was checked out before.
The baseline and the source branch are left exactly as they were. With
--restore the source branch is additionally reset to its backup tag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return actions.AbortAction(cmd.Context(), rc, actions.AbortOptions{
				RestoreBackup: restore,
				Force:         force,
			})
		},
	}

	cmd.Flags().BoolVar(&restore, "restore", false, "Also reset the source branch to the session's backup tag")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")

	return cmd
}
