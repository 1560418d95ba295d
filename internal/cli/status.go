package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the landing state of the repository",
		Long: `Show the landing state of the repository.

Reports the active landing session, the interrupted operation waiting on
conflict resolution if there is one, and every landing branch with its
recorded provenance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return actions.StatusAction(cmd.Context(), rc)
		},
	}

	return cmd
}
