package actions

import (
	"context"
	"fmt"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/internal/tui"
)

// VerifyOptions are options for the verify command
type VerifyOptions struct {
	SourceBranch string
}

// VerifyAction range-diffs what the source branch carried against what
// actually landed and cross-checks patch ids, so content changes are
// called out before anything gets pushed. Commits rewritten only in
// their message, like annotated picks, pass.
func VerifyAction(ctx context.Context, rc *runtime.Context, opts VerifyOptions) error {
	source, err := ResolveSourceBranch(rc, opts.SourceBranch)
	if err != nil {
		return err
	}

	report, err := rc.Engine.Verify(ctx, source)
	if err != nil {
		return err
	}

	printVerifyReport(rc, report)

	if !report.Clean() {
		return fmt.Errorf("landing differs from the source branch")
	}
	return nil
}

func printVerifyReport(rc *runtime.Context, report *engine.VerifyReport) {
	splog := rc.Splog

	splog.Info("Comparing %s against %s",
		tui.ColorDim(report.OldRange), tui.ColorDim(report.NewRange))
	splog.Newline()

	if report.Summary != nil {
		for _, entry := range report.Summary.Entries {
			splog.Info("  %s %s", dispositionMark(entry.Disposition), entry.Subject)
		}
		splog.Newline()
		splog.Info("%s", report.Summary.String())
	}

	if len(report.AnnotationOnly) > 0 {
		splog.Newline()
		splog.Info("Changed in message only (patch intact):")
		for _, subject := range report.AnnotationOnly {
			splog.Info("%s", tui.ColorDim(subject))
		}
	}

	if len(report.PatchMismatches) > 0 {
		splog.Newline()
		splog.Warn("these commits did not land with their patch intact:")
		for _, subject := range report.PatchMismatches {
			splog.Info("%s", tui.ColorYellow(subject))
		}
	}

	splog.Newline()
	switch {
	case report.Clean() && len(report.AnnotationOnly) == 0:
		splog.Info("%s Everything landed exactly as it was on %s.",
			tui.ColorOK("✔"), tui.ColorBranchName(report.SourceBranch, false))
	case report.Clean():
		splog.Info("%s Every commit landed with its patch intact.", tui.ColorOK("✔"))
	default:
		splog.Warn("the landing on %s does not match the source; review before pushing", report.LandingBranch)
	}
}

func dispositionMark(d git.RangeDiffDisposition) string {
	switch d {
	case git.RangeDiffEqual:
		return tui.ColorOK("=")
	case git.RangeDiffModified:
		return tui.ColorYellow("!")
	case git.RangeDiffOnlyLeft:
		return tui.ColorRed("<")
	case git.RangeDiffOnlyRight:
		return tui.ColorGreen(">")
	}
	return "?"
}
