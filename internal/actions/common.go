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

// ResolveSourceBranch picks the source branch for a landing command: the
// explicit argument, else the checked-out branch when it is a plausible
// source, else an interactive selection
func ResolveSourceBranch(rc *runtime.Context, arg string) (string, error) {
	if arg != "" {
		if !rc.Engine.BranchExists(arg) {
			return "", fmt.Errorf("branch %s not found", arg)
		}
		return arg, nil
	}

	baseline := rc.Engine.Baseline()
	current := rc.Engine.CurrentBranch()
	if current != "" && current != baseline && !isLandingBranch(rc, current) {
		return current, nil
	}

	if !utils.IsInteractive() {
		return "", fmt.Errorf("no source branch given (checked out on %s)", current)
	}

	candidates := sourceCandidates(rc)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no candidate source branches found")
	}
	return tui.PromptBranchSelection("Select the branch to land", candidates, 0)
}

// sourceCandidates lists branches that could serve as a landing source:
// everything except the baseline and existing landing branches
func sourceCandidates(rc *runtime.Context) []string {
	baseline := rc.Engine.Baseline()
	var candidates []string
	for _, name := range rc.Engine.AllBranchNames() {
		if name == baseline || isLandingBranch(rc, name) {
			continue
		}
		candidates = append(candidates, name)
	}
	return candidates
}

func isLandingBranch(rc *runtime.Context, name string) bool {
	// LandingBranchFor("") yields the bare landing prefix
	prefix := rc.Engine.LandingBranchFor("")
	return prefix != "" && strings.HasPrefix(name, prefix)
}

// PrintConflictChecklist prints the fixed procedure for getting out of a
// conflicted landing, mirroring how an operator would resolve by hand
func PrintConflictChecklist(ctx context.Context, rc *runtime.Context, result *engine.LandingResult) {
	splog := rc.Splog

	splog.Info("%s", tui.ColorRed(fmt.Sprintf("Hit conflict landing onto %s", result.LandingBranch)))
	splog.Newline()

	files := result.ConflictFiles
	if len(files) == 0 {
		if listed, err := git.UnmergedPaths(ctx); err == nil {
			files = listed
		}
	}
	if len(files) > 0 {
		splog.Info("%s", tui.ColorYellow("Unmerged files:"))
		for _, file := range files {
			splog.Info("%s", tui.ColorRed(file))
		}
		splog.Newline()
	}

	if result.TotalPlanned > 0 {
		splog.Info("%s", tui.ColorYellow(fmt.Sprintf("Landed %d of %d planned commits so far.",
			result.LandedCount, result.TotalPlanned)))
		splog.Newline()
	}

	splog.Info("%s", tui.ColorYellow("To fix and finish the landing:"))
	splog.Info("(1) inspect the listed files, or walk them with %s", tui.ColorCyan("regraft resolve"))
	splog.Info("(2) resolve each conflict, keeping the %s version as the base and preserving both sides when in doubt", rc.Engine.Baseline())
	splog.Info("(3) mark them as resolved with %s", tui.ColorCyan("regraft add ."))
	splog.Info("(4) run %s to keep going", tui.ColorCyan("regraft continue"))
	splog.Info("It's safe to cancel the landing with %s.", tui.ColorCyan("regraft abort"))
	if result.BackupTag != "" {
		splog.Info("Your source branch is backed up at %s.", tui.ColorTag(result.BackupTag))
	}
}

// PrintLandingResult reports the outcome of a completed or conflicted start
func PrintLandingResult(ctx context.Context, rc *runtime.Context, result *engine.LandingResult) error {
	splog := rc.Splog

	switch result.Result {
	case engine.LandNothingToDo:
		splog.Info("Nothing to land: every commit is already on %s.", tui.ColorBranchName(rc.Engine.Baseline(), false))
		return nil
	case engine.LandConflict:
		PrintConflictChecklist(ctx, rc, result)
		return fmt.Errorf("landing stopped on conflicts")
	}

	unit := "commit(s)"
	if result.Strategy == engine.StrategyFiles {
		unit = "file(s)"
	}
	splog.Info("Landed %d %s on %s via %s.",
		result.LandedCount, unit,
		tui.ColorBranchName(result.LandingBranch, false),
		tui.ColorStrategy(result.Strategy.String()))
	if result.BackupTag != "" {
		splog.Info("Backup tag: %s", tui.ColorTag(result.BackupTag))
	}
	splog.Tip("Review with %s, then push with %s.",
		tui.ColorCyan("regraft verify"), tui.ColorCyan("regraft submit"))
	return nil
}

// commitLines renders one display line per commit for prompts and plans
func commitLines(commits []git.CommitSummary) []string {
	lines := make([]string, 0, len(commits))
	for _, commit := range commits {
		lines = append(lines, fmt.Sprintf("%s %s", commit.ShortSHA, commit.Subject))
	}
	return lines
}
