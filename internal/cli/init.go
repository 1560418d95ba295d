package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/tui"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		baseline      string
		remote        string
		pickLimit     int
		fileLimit     int
		noAutoBackup  bool
		noInteractive bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize regraft in the current repository",
		Long: `Initialize regraft in the current repository.

Records the baseline branch (the branch landings target) and the strategy
thresholds in .git/.regraft_config. Run it again to change the settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			splog, err := tui.NewSplogWithLogFile(tui.GetLogFilePath())
			if err != nil {
				splog = tui.NewSplog()
			}
			defer splog.Close()

			return actions.InitAction(cmd.Context(), splog, actions.InitOptions{
				Baseline:      baseline,
				Remote:        remote,
				PickLimit:     pickLimit,
				FileLimit:     fileLimit,
				NoAutoBackup:  noAutoBackup,
				NoInteractive: noInteractive,
			})
		},
	}

	cmd.Flags().StringVar(&baseline, "baseline", "", "Baseline branch landings target (inferred when omitted)")
	cmd.Flags().StringVar(&remote, "remote", "", "Remote to push landing branches to (default origin)")
	cmd.Flags().IntVar(&pickLimit, "pick-limit", 0, "Max unique commits before replay takes over from pick")
	cmd.Flags().IntVar(&fileLimit, "file-limit", 0, "Max touched files for a change set to count as file-scoped")
	cmd.Flags().BoolVar(&noAutoBackup, "no-auto-backup", false, "Do not tag branches before landing operations")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Fail instead of prompting when the baseline cannot be inferred")
	_ = cmd.RegisterFlagCompletionFunc("baseline", completeBranches)

	return cmd
}
