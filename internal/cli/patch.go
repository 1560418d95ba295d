package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newPatchCmd creates the patch command with its export and apply subcommands
func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Move a branch's work as a patch series",
		Long: `Move a branch's work as a patch series.

'patch export' writes one format-patch file per unique commit; 'patch
apply' lands such a series onto the baseline in another clone, with the
same continue/abort flow as the other strategies.`,
	}

	cmd.AddCommand(newPatchExportCmd())
	cmd.AddCommand(newPatchApplyCmd())

	return cmd
}

// newPatchExportCmd creates the patch export subcommand
func newPatchExportCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:               "export [branch]",
		Short:             "Write the branch's unique commits as numbered patch files",
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

			return actions.PatchExportAction(cmd.Context(), rc, actions.PatchExportOptions{
				SourceBranch: sourceBranch,
				OutputDir:    outputDir,
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Directory for the patch files (default patches-<branch>)")

	return cmd
}

// newPatchApplyCmd creates the patch apply subcommand
func newPatchApplyCmd() *cobra.Command {
	var (
		landingBranch string
		force         bool
		noBackup      bool
	)

	cmd := &cobra.Command{
		Use:   "apply <dir>",
		Short: "Land an exported patch series onto the baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return actions.PatchApplyAction(cmd.Context(), rc, actions.PatchApplyOptions{
				PatchDir:      args[0],
				LandingBranch: landingBranch,
				Force:         force,
				NoBackup:      noBackup,
			})
		},
	}

	cmd.Flags().StringVar(&landingBranch, "onto-branch", "", "Name for the landing branch (default landing/<dir>)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Recreate the landing branch if it already exists")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the safety tag for this landing")

	return cmd
}
