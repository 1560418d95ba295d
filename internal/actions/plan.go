package actions

import (
	"context"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
)

// PlanOptions are options for the plan command
type PlanOptions struct {
	SourceBranch string
	ShowFiles    bool
	Fetch        bool
}

// PlanAction inspects a source branch against the baseline and prints the
// landing plan: what is unique, what the decision tree picked, and why
func PlanAction(ctx context.Context, rc *runtime.Context, opts PlanOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	if opts.Fetch {
		remote := rc.Engine.Remote()
		rc.Splog.Debug("fetching %s before planning", remote)
		if err := git.FetchRemote(ctx, remote); err != nil {
			return err
		}
	}

	plan, err := rc.Engine.Plan(ctx, source)
	if err != nil {
		return err
	}

	diffStat := ""
	if opts.ShowFiles && len(plan.UniqueCommits) > 0 {
		diffStat, _ = git.DiffStat(ctx, plan.MergeBase, plan.SourceTip)
	}

	printPlan(rc, plan, opts.ShowFiles, diffStat)
	return nil
}

func printPlan(rc *runtime.Context, plan *engine.Plan, showFiles bool, diffStat string) {
	splog := rc.Splog

	splog.Info("Landing plan for %s onto %s",
		tui.ColorBranchName(plan.SourceBranch, false),
		tui.ColorBranchName(plan.Baseline, false))
	splog.Newline()

	splog.Info("  merge base    %s", tui.ColorSHA(git.AbbrevSHA(plan.MergeBase)))
	splog.Info("  source tip    %s", tui.ColorSHA(git.AbbrevSHA(plan.SourceTip)))
	splog.Info("  baseline tip  %s", tui.ColorSHA(git.AbbrevSHA(plan.BaselineTip)))
	splog.Newline()

	if len(plan.UniqueCommits) == 0 {
		splog.Info("No commits left to land; %s already carries this work.",
			tui.ColorBranchName(plan.Baseline, false))
	} else {
		splog.Info("%d commit(s) to land:", len(plan.UniqueCommits))
		for _, commit := range plan.UniqueCommits {
			splog.Info("  %s %s", tui.ColorSHA(commit.ShortSHA), commit.Subject)
		}
	}
	splog.Newline()

	splog.Info("  baseline ahead by %d commit(s) since the merge base", plan.BaselineAhead)
	splog.Info("  files touched: %d on source, %d on baseline, %d overlapping",
		len(plan.SourceFiles), len(plan.BaselineFiles), len(plan.OverlapFiles))
	if showFiles && len(plan.OverlapFiles) > 0 {
		splog.Info("  overlapping files:")
		for _, file := range plan.OverlapFiles {
			splog.Info("    %s", tui.ColorYellow(file))
		}
	}
	if diffStat != "" {
		splog.Info("  %s", tui.ColorDim(diffStat))
	}
	if plan.HasMergeCommits {
		splog.Info("  source history contains merge commits")
	}
	splog.Newline()

	splog.Info("Strategy: %s", tui.ColorStrategy(plan.Strategy.String()))
	for _, reason := range plan.Reasons {
		splog.Info("  %s", tui.ColorDim(reason))
	}
	for _, warning := range plan.Warnings {
		splog.Warn("%s", warning)
	}
	splog.Newline()

	switch plan.Strategy {
	case engine.StrategyNone:
		splog.Info("Nothing to do.")
	case engine.StrategyMerge:
		splog.Tip("Run %s to land with a single merge commit.", tui.ColorCyan("regraft merge"))
	case engine.StrategyPick:
		splog.Tip("Run %s to land commit by commit.", tui.ColorCyan("regraft pick"))
		if plan.FileScoped {
			splog.Tip("The change set is small; %s can land whole files instead.",
				tui.ColorCyan("regraft files <path>..."))
		}
	case engine.StrategyReplay:
		splog.Tip("Run %s to replay the whole range onto %s.",
			tui.ColorCyan("regraft replay"), tui.ColorBranchName(plan.Baseline, false))
	}
}
