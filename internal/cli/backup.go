package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newBackupCmd creates the backup command
func newBackupCmd() *cobra.Command {
	var (
		list    bool
		restore string
		force   bool
		prune   int
	)

	cmd := &cobra.Command{
		Use:   "backup [branch]",
		Short: "Tag, list or restore branch backups",
		Long: `Tag, list or restore branch backups.

Backups are annotated tags under regraft/backup/<branch>/<timestamp>.
Landing operations take one automatically unless auto backup is off; this
command takes one by hand, lists what exists, resets a branch back to a
tag, or prunes old tags with --prune.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			branchName := ""
			if len(args) > 0 {
				branchName = args[0]
			}

			switch {
			case restore != "":
				return actions.BackupRestoreAction(cmd.Context(), rc, restore, force)
			case cmd.Flags().Changed("prune"):
				return actions.BackupPruneAction(cmd.Context(), rc, branchName, prune)
			case list:
				return actions.BackupListAction(cmd.Context(), rc, branchName)
			default:
				return actions.BackupCreateAction(cmd.Context(), rc, branchName)
			}
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List backup tags instead of creating one")
	cmd.Flags().StringVar(&restore, "restore", "", "Reset the tagged branch to this backup tag")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Restore without asking for confirmation")
	cmd.Flags().IntVar(&prune, "prune", 0, "Delete all but this many newest backups of the branch")

	return cmd
}
