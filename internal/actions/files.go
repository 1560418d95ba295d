package actions

import (
	"context"
	"fmt"
	"strings"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// FilesOptions are options for the files command
type FilesOptions struct {
	SourceBranch  string
	Paths         []string
	LandingBranch string
	Force         bool
	NoBackup      bool
}

// FilesAction checks whole files out of the source branch onto a landing
// branch cut from the baseline and commits them in one go. History does
// not move over; the commit message references the source revision.
func FilesAction(ctx context.Context, rc *runtime.Context, opts FilesOptions) error {
	if len(opts.Paths) == 0 {
		return fmt.Errorf("no paths given; pass the files or patterns to land")
	}

	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	for _, path := range opts.Paths {
		if strings.ContainsAny(path, "*?[") {
			continue
		}
		exists, err := git.PathExistsAt(ctx, source, path)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("path %s is not tracked on %s", path, source)
		}
	}

	rc.Splog.Info("Landing %d path(s) from %s onto %s...",
		len(opts.Paths),
		tui.ColorBranchName(source, false),
		tui.ColorBranchName(rc.Engine.Baseline(), false))

	result, err := rc.Engine.LandFiles(ctx, source, opts.Paths, engine.StartOptions{
		LandingBranch: utils.SanitizeBranchName(opts.LandingBranch),
		Force:         opts.Force,
		NoBackup:      opts.NoBackup,
	})
	if err != nil {
		return err
	}

	if result.Result == engine.LandNothingToDo {
		rc.Splog.Info("Those paths are identical on %s already.",
			tui.ColorBranchName(rc.Engine.Baseline(), false))
		return nil
	}
	return PrintLandingResult(ctx, rc, result)
}
