package actions

import (
	"context"
	"sort"
	"time"

	"regraft.dev/regraft/internal/config"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
)

// StatusAction prints the landing state of the repository: the active
// session if any, the interrupted operation if one is waiting, and every
// landing branch with its recorded provenance
func StatusAction(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog
	baseline := rc.Engine.Baseline()
	current := rc.Engine.CurrentBranch()

	splog.Info("Baseline: %s", tui.ColorBranchName(baseline, current == baseline))
	if current != "" && current != baseline {
		splog.Info("Checked out: %s", tui.ColorBranchName(current, true))
	}

	printSession(rc)
	printInterrupted(ctx, rc)

	if err := printLandingBranches(rc); err != nil {
		return err
	}

	if !rc.Engine.HasSession() {
		splog.Newline()
		splog.Tip("Run %s to see how a branch would land.", tui.ColorCyan("regraft plan <branch>"))
	}
	return nil
}

func printSession(rc *runtime.Context) {
	splog := rc.Splog
	if !rc.Engine.HasSession() {
		return
	}
	session, err := rc.Engine.Session()
	if err != nil {
		splog.Warn("could not read session state: %v", err)
		return
	}

	splog.Newline()
	splog.Info("%s", tui.ColorYellow("Landing in progress:"))
	if session.SourceBranch != "" {
		splog.Info("  %s onto %s via %s",
			tui.ColorBranchName(session.SourceBranch, false),
			tui.ColorBranchName(session.LandingBranch, false),
			tui.ColorStrategy(session.Strategy))
	} else {
		splog.Info("  onto %s via %s",
			tui.ColorBranchName(session.LandingBranch, false),
			tui.ColorStrategy(session.Strategy))
	}
	if len(session.PlannedSHAs) > 0 {
		splog.Info("  %d of %d planned commit(s) landed", len(session.LandedSHAs), len(session.PlannedSHAs))
	}
	if session.BackupTag != "" {
		splog.Info("  backup tag %s", tui.ColorTag(session.BackupTag))
	}
	if !session.StartedAt.IsZero() {
		splog.Info("  started %s", session.StartedAt.Local().Format("2006-01-02 15:04:05"))
	}
}

func printInterrupted(ctx context.Context, rc *runtime.Context) {
	splog := rc.Splog
	if !config.HasContinuationState(rc.RepoRoot) {
		return
	}
	cont, err := config.GetContinuationState(rc.RepoRoot)
	if err != nil {
		splog.Warn("could not read continuation state: %v", err)
		return
	}

	splog.Newline()
	splog.Info("%s", tui.ColorConflict("Stopped on conflicts"))
	if cont.CurrentSHA != "" {
		splog.Info("  %s interrupted at %s, %d commit(s) still queued",
			cont.Op, tui.ColorSHA(git.AbbrevSHA(cont.CurrentSHA)), len(cont.RemainingSHAs))
	} else {
		splog.Info("  %s interrupted", cont.Op)
	}

	if unmerged, err := git.UnmergedPaths(ctx); err == nil && len(unmerged) > 0 {
		splog.Info("  unmerged files:")
		for _, path := range unmerged {
			splog.Info("    %s", tui.ColorRed(path))
		}
	}
	splog.Tip("Resolve with %s, then %s. %s backs out.",
		tui.ColorCyan("regraft resolve"),
		tui.ColorCyan("regraft continue"),
		tui.ColorCyan("regraft abort"))
}

func printLandingBranches(rc *runtime.Context) error {
	splog := rc.Splog
	metas, err := rc.Engine.LandingBranches()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		return nil
	}

	names := make([]string, 0, len(metas))
	for name := range metas {
		names = append(names, name)
	}
	sort.Strings(names)

	splog.Newline()
	splog.Info("Landing branches:")
	for _, name := range names {
		meta := metas[name]
		line := "  " + tui.ColorBranchName(name, false)
		if meta.SourceBranch != nil && *meta.SourceBranch != "" {
			line += " from " + *meta.SourceBranch
		}
		if meta.Strategy != nil && *meta.Strategy != "" {
			line += " via " + tui.ColorStrategy(*meta.Strategy)
		}
		if meta.LandedAt != nil && *meta.LandedAt != "" {
			line += tui.ColorDim(" landed " + formatMetaDate(*meta.LandedAt))
		} else {
			line += tui.ColorYellow(" (unfinished)")
		}
		splog.Info("%s", line)
		if meta.PrInfo != nil && meta.PrInfo.Number != nil {
			prLine := "    " + tui.ColorPRNumber(*meta.PrInfo.Number)
			if meta.PrInfo.URL != nil {
				prLine += " " + tui.ColorDim(*meta.PrInfo.URL)
			}
			splog.Info("%s", prLine)
		}
	}
	return nil
}

// formatMetaDate renders the compact UTC timestamps stored in metadata and
// backup tags for display, passing anything unparseable through as-is
func formatMetaDate(raw string) string {
	t, err := time.Parse("20060102150405", raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02 15:04")
}
