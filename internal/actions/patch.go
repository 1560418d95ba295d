package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// PatchExportOptions are options for the patch export command
type PatchExportOptions struct {
	SourceBranch string
	OutputDir    string
}

// PatchExportAction writes one format-patch file per unique source commit,
// numbered in apply order. The series can move between clones and land
// later with `regraft patch apply`.
func PatchExportAction(ctx context.Context, rc *runtime.Context, opts PatchExportOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	plan, err := rc.Engine.Plan(ctx, source)
	if err != nil {
		return err
	}
	if len(plan.UniqueCommits) == 0 {
		rc.Splog.Info("Nothing to export: every commit is already on %s.",
			tui.ColorBranchName(plan.Baseline, false))
		return nil
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "patches-" + utils.SanitizeBranchName(source)
	}
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	for i, commit := range plan.UniqueCommits {
		path, err := git.FormatPatchCommit(ctx, commit.SHA, outDir)
		if err != nil {
			return err
		}
		ordered, err := renumberPatch(path, i+1)
		if err != nil {
			return err
		}
		rc.Splog.Info("  %s %s", tui.ColorSHA(commit.ShortSHA), filepath.Base(ordered))
	}

	rc.Splog.Info("Exported %d patch(es) to %s.", len(plan.UniqueCommits), outDir)
	rc.Splog.Tip("Land them elsewhere with %s.",
		tui.ColorCyan(fmt.Sprintf("regraft patch apply %s", outDir)))
	return nil
}

// renumberPatch renames a single-commit patch file so the series sorts in
// apply order regardless of per-commit numbering
func renumberPatch(path string, position int) (string, error) {
	base := filepath.Base(path)
	if cut := strings.Index(base, "-"); cut > 0 {
		base = base[cut+1:]
	}
	ordered := filepath.Join(filepath.Dir(path), fmt.Sprintf("%04d-%s", position, base))
	if ordered == path {
		return path, nil
	}
	if err := os.Rename(path, ordered); err != nil {
		return "", fmt.Errorf("failed to order patch %s: %w", filepath.Base(path), err)
	}
	return ordered, nil
}

// PatchApplyOptions are options for the patch apply command
type PatchApplyOptions struct {
	PatchDir      string
	LandingBranch string
	Force         bool
	NoBackup      bool
}

// PatchApplyAction lands an exported patch series onto a landing branch
// cut from the baseline, with the usual continue/abort flow on conflicts
func PatchApplyAction(ctx context.Context, rc *runtime.Context, opts PatchApplyOptions) error {
	if opts.PatchDir == "" {
		return fmt.Errorf("no patch directory given")
	}

	landing := utils.SanitizeBranchName(opts.LandingBranch)
	if landing == "" {
		dirName := filepath.Base(filepath.Clean(opts.PatchDir))
		landing = rc.Engine.LandingBranchFor(utils.SanitizeBranchName(dirName))
	}

	rc.Splog.Info("Applying patches from %s onto %s...",
		opts.PatchDir, tui.ColorBranchName(rc.Engine.Baseline(), false))

	result, err := rc.Engine.ApplyPatches(ctx, opts.PatchDir, engine.StartOptions{
		LandingBranch: landing,
		Force:         opts.Force,
		NoBackup:      opts.NoBackup,
	})
	if err != nil {
		return err
	}

	return PrintLandingResult(ctx, rc, result)
}
