package engine

import (
	"fmt"

	"regraft.dev/regraft/internal/git"
)

// Strategy is the mechanism by which a source branch's work reaches the
// landing branch
type Strategy int

const (
	// StrategyNone means there is nothing to land
	StrategyNone Strategy = iota
	// StrategyMerge lands via a direct merge commit
	StrategyMerge
	// StrategyPick lands commit by commit with cherry-pick
	StrategyPick
	// StrategyReplay lands by rebasing the whole unique range
	StrategyReplay
	// StrategyFiles lands whole files without history
	StrategyFiles
	// StrategyApply lands an exported patch series with git am
	StrategyApply
)

// strategyNames maps strategies to the names used in session files,
// metadata refs and CLI output
var strategyNames = map[Strategy]string{
	StrategyNone:   "none",
	StrategyMerge:  "merge",
	StrategyPick:   "pick",
	StrategyReplay: "replay",
	StrategyFiles:  "files",
	StrategyApply:  "apply",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy converts a strategy name back to its value
func ParseStrategy(name string) (Strategy, error) {
	for strategy, n := range strategyNames {
		if n == name {
			return strategy, nil
		}
	}
	return StrategyNone, fmt.Errorf("unknown strategy: %q", name)
}

// Plan is the outcome of inspecting a source branch against the baseline
type Plan struct {
	SourceBranch  string
	Baseline      string
	LandingBranch string

	// MergeBase is the common ancestor the comparison hangs off
	MergeBase   string
	SourceTip   string
	BaselineTip string

	// UniqueCommits are source commits past the merge base whose patches
	// are not already on the baseline, oldest first. Merge commits never
	// appear here.
	UniqueCommits []git.CommitSummary

	// BaselineAhead counts baseline commits past the merge base
	BaselineAhead int

	// Changed-file sets on each side of the merge base, and their
	// intersection. Overlap files are where conflicts will come from.
	SourceFiles   []string
	BaselineFiles []string
	OverlapFiles  []string

	// HasMergeCommits notes merge commits in the source range; replay
	// flattens them unless merges are preserved
	HasMergeCommits bool

	// FileScoped marks a change set small enough to land file by file
	FileScoped bool

	Strategy Strategy

	// Reasons records the decision rules consulted, in order
	Reasons []string

	// Warnings records hazards the user should read before starting
	Warnings []string
}

// LandResult classifies how far a landing operation got
type LandResult int

const (
	// LandDone indicates the operation completed
	LandDone LandResult = iota
	// LandConflict indicates the operation stopped on conflicts
	LandConflict
	// LandNothingToDo indicates there was no work to land
	LandNothingToDo
)

// LandingResult reports the outcome of a landing operation
type LandingResult struct {
	Result        LandResult
	Strategy      Strategy
	LandingBranch string

	// LandedCount / TotalPlanned track progress through the planned set
	LandedCount  int
	TotalPlanned int

	// BackupTag names the safety tag, when one was taken
	BackupTag string

	// ConflictFiles lists the unmerged paths when Result is LandConflict
	ConflictFiles []string
}

// VerifyReport compares what the source carried against what landed
type VerifyReport struct {
	SourceBranch  string
	LandingBranch string

	// OldRange / NewRange are the compared revision ranges
	OldRange string
	NewRange string

	Summary *git.RangeDiffSummary

	// AnnotationOnly lists commits range-diff marked modified whose stable
	// patch ids still agree, meaning only the message changed (the usual
	// effect of the pick annotation)
	AnnotationOnly []string

	// PatchMismatches lists matched commits whose stable patch ids differ
	// between the two ranges, meaning the content itself changed
	PatchMismatches []string
}

// Clean reports whether every source commit landed with its patch intact.
// Message-only rewrites stay clean; dropped commits and patch changes do
// not.
func (r *VerifyReport) Clean() bool {
	return r.Summary != nil && r.Summary.Dropped == 0 && len(r.PatchMismatches) == 0
}
