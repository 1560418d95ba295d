package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "regraft",
		Short: "Regraft lands one branch's work onto another without touching either",
		Long: `Regraft lands one branch's work onto another without touching either.

It inspects what a source branch carries beyond a baseline branch, picks a
landing strategy (replay, pick or merge), and builds the result on a separate
landing branch. Conflicts pause the operation with a fixed checklist;
'regraft continue' and 'regraft abort' always move it forward or back.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				os.Setenv("DEBUG", "1")
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newFilesCmd())
	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newContinueCmd())
	rootCmd.AddCommand(newAbortCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newSubmitCmd())

	return rootCmd
}
