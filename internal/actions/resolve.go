package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// ResolveOptions are options for the resolve command
type ResolveOptions struct {
	// KeepBaseline resolves every file keeping the baseline side
	KeepBaseline bool
	// KeepSource resolves every file keeping the source side
	KeepSource bool
	// Union resolves every file keeping both sides, baseline first
	Union bool
}

const (
	resolveChoiceBaseline = "keep baseline (ours)"
	resolveChoiceSource   = "keep source (theirs)"
	resolveChoiceUnion    = "keep both (baseline first)"
	resolveChoiceEdit     = "open in editor"
	resolveChoiceSkip     = "skip for now"
)

// ResolveAction walks the unmerged files of an interrupted landing. Each
// file's conflict hunks are shown with both sides and a word-level diff,
// then resolved by a fixed mode, in the editor, or skipped. Resolved files
// are staged so `regraft continue` can pick the landing back up.
func ResolveAction(ctx context.Context, rc *runtime.Context, opts ResolveOptions) error {
	if err := validateResolveOptions(opts); err != nil {
		return err
	}

	files, err := git.UnmergedFiles(ctx)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		rc.Splog.Info("No unmerged files. Run %s to keep going.", tui.ColorCyan("regraft continue"))
		return nil
	}

	if mode, ok := fixedResolveMode(opts); ok {
		return resolveAllWith(ctx, rc, files, mode)
	}

	if !utils.IsInteractive() {
		return fmt.Errorf("no terminal for interactive resolution; use --keep-baseline, --keep-source or --union")
	}

	return resolveInteractively(ctx, rc, files)
}

func validateResolveOptions(opts ResolveOptions) error {
	set := 0
	for _, flag := range []bool{opts.KeepBaseline, opts.KeepSource, opts.Union} {
		if flag {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("--keep-baseline, --keep-source and --union are mutually exclusive")
	}
	return nil
}

func fixedResolveMode(opts ResolveOptions) (git.ResolveMode, bool) {
	switch {
	case opts.KeepBaseline:
		return git.ResolveOurs, true
	case opts.KeepSource:
		return git.ResolveTheirs, true
	case opts.Union:
		return git.ResolveUnion, true
	}
	return git.ResolveOurs, false
}

// resolveAllWith applies one resolution mode to every unmerged file and
// stages the results
func resolveAllWith(ctx context.Context, rc *runtime.Context, files []git.UnmergedFile, mode git.ResolveMode) error {
	resolved := make([]string, 0, len(files))
	for _, file := range files {
		if err := git.ResolveFile(absConflictPath(rc, file.Path), mode); err != nil {
			return fmt.Errorf("failed to resolve %s: %w", file.Path, err)
		}
		resolved = append(resolved, file.Path)
		rc.Splog.Info("%s %s", tui.ColorOK("resolved"), file.Path)
	}

	if err := git.StagePaths(ctx, resolved); err != nil {
		return err
	}
	rc.Splog.Info("Staged %d file(s).", len(resolved))
	rc.Splog.Tip("Run %s to keep going.", tui.ColorCyan("regraft continue"))
	return nil
}

func resolveInteractively(ctx context.Context, rc *runtime.Context, files []git.UnmergedFile) error {
	splog := rc.Splog
	var resolved []string
	var skipped []string

	for i, file := range files {
		splog.Newline()
		splog.Info("[%d/%d] %s", i+1, len(files), tui.RenderUnmergedFile(file))

		path := absConflictPath(rc, file.Path)
		hunks, err := git.ReadConflictHunks(path)
		if err != nil {
			splog.Warn("could not read conflict hunks in %s: %v", file.Path, err)
		}
		for _, hunk := range hunks {
			splog.Page(tui.RenderConflictHunk(hunk))
		}

		choice, err := tui.PromptSelectString(
			fmt.Sprintf("How should %s be resolved?", file.Path),
			[]string{
				resolveChoiceBaseline,
				resolveChoiceSource,
				resolveChoiceUnion,
				resolveChoiceEdit,
				resolveChoiceSkip,
			})
		if err != nil {
			return err
		}

		switch choice {
		case resolveChoiceBaseline:
			err = git.ResolveFile(path, git.ResolveOurs)
		case resolveChoiceSource:
			err = git.ResolveFile(path, git.ResolveTheirs)
		case resolveChoiceUnion:
			err = git.ResolveFile(path, git.ResolveUnion)
		case resolveChoiceEdit:
			err = tui.EditFileInPlace(path)
		case resolveChoiceSkip:
			skipped = append(skipped, file.Path)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", file.Path, err)
		}
		resolved = append(resolved, file.Path)
	}

	if len(resolved) > 0 {
		if err := git.StagePaths(ctx, resolved); err != nil {
			return err
		}
		splog.Newline()
		splog.Info("Staged %d file(s).", len(resolved))
	}
	if len(skipped) > 0 {
		splog.Warn("%d file(s) skipped and still unmerged:", len(skipped))
		for _, path := range skipped {
			splog.Info("%s", tui.ColorRed(path))
		}
		return nil
	}

	splog.Tip("Run %s to keep going.", tui.ColorCyan("regraft continue"))
	return nil
}

// absConflictPath anchors an index-relative path at the repo root, since
// the process may be running from a subdirectory
func absConflictPath(rc *runtime.Context, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rc.RepoRoot, path)
}
