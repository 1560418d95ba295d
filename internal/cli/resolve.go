package cli

import (
	"github.com/spf13/cobra"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/runtime"
)

// newResolveCmd creates the resolve command
func newResolveCmd() *cobra.Command {
	var (
		keepBaseline bool
		keepSource   bool
		union        bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Walk the unmerged files of a halted landing",
		Long: `Walk the unmerged files of a halted landing.

Each file's conflict hunks are shown with both sides and a word-level diff
of what changed. Per file, keep the baseline side, keep the source side,
keep both (baseline first), open the file in your editor, or skip it.
Resolved files are staged for 'regraft continue'.

The non-interactive flags resolve every file the same way without asking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return actions.ResolveAction(cmd.Context(), rc, actions.ResolveOptions{
				KeepBaseline: keepBaseline,
				KeepSource:   keepSource,
				Union:        union,
			})
		},
	}

	cmd.Flags().BoolVar(&keepBaseline, "keep-baseline", false, "Keep the baseline side of every conflict")
	cmd.Flags().BoolVar(&keepSource, "keep-source", false, "Keep the source side of every conflict")
	cmd.Flags().BoolVar(&union, "union", false, "Keep both sides of every conflict, baseline first")

	return cmd
}
