package actions

import (
	"context"
	"fmt"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
)

// ContinueOptions are options for the continue command
type ContinueOptions struct {
	// StageAll stages every change before resuming, like `regraft add .`
	StageAll bool
}

// ContinueAction resumes an interrupted landing after conflicts were
// resolved. Remaining queued work is drained and the session is finished
// when everything has landed.
func ContinueAction(ctx context.Context, rc *runtime.Context, opts ContinueOptions) error {
	if opts.StageAll {
		if err := git.StageAll(ctx); err != nil {
			return fmt.Errorf("failed to stage changes: %w", err)
		}
	}

	unmerged, err := git.UnmergedPaths(ctx)
	if err == nil && len(unmerged) > 0 {
		rc.Splog.Error("Conflicts are still unresolved:")
		for _, path := range unmerged {
			rc.Splog.Info("%s", tui.ColorRed(path))
		}
		rc.Splog.Tip("Resolve them (or run %s), stage with %s, then continue.",
			tui.ColorCyan("regraft resolve"), tui.ColorCyan("regraft add ."))
		return fmt.Errorf("unresolved conflicts remain")
	}

	result, err := rc.Engine.ContinueSession(ctx)
	if err != nil {
		return err
	}

	return PrintLandingResult(ctx, rc, result)
}
