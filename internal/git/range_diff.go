package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// RangeDiffDisposition classifies one commit pair in range-diff output
type RangeDiffDisposition int

const (
	// RangeDiffEqual means the patches are identical
	RangeDiffEqual RangeDiffDisposition = iota
	// RangeDiffModified means the patch landed with content changes
	RangeDiffModified
	// RangeDiffOnlyLeft means the commit exists only in the left range
	RangeDiffOnlyLeft
	// RangeDiffOnlyRight means the commit exists only in the right range
	RangeDiffOnlyRight
)

// RangeDiffEntry is one commit pairing reported by git range-diff
type RangeDiffEntry struct {
	LeftSHA     string
	RightSHA    string
	Disposition RangeDiffDisposition
	Subject     string
}

// RangeDiffSummary aggregates a range-diff comparison
type RangeDiffSummary struct {
	Entries  []RangeDiffEntry
	Equal    int
	Modified int
	Dropped  int
	Added    int
}

// Clean reports whether every left-range commit landed unchanged
func (s *RangeDiffSummary) Clean() bool {
	return s.Modified == 0 && s.Dropped == 0
}

func (s *RangeDiffSummary) String() string {
	return fmt.Sprintf("%d unchanged, %d modified, %d dropped, %d added",
		s.Equal, s.Modified, s.Dropped, s.Added)
}

// RangeDiff compares the commits of oldBase..oldTip against
// newBase..newTip and reports how each patch fared: identical, modified,
// dropped or added. The two ranges may hang off different bases, which is
// exactly the landing case: the source range starts at the merge base,
// the landed range at the baseline tip.
func RangeDiff(ctx context.Context, oldBase, oldTip, newBase, newTip string) (*RangeDiffSummary, error) {
	output, err := RunGitCommandRawWithContext(ctx, "range-diff", "--no-color",
		oldBase+".."+oldTip, newBase+".."+newTip)
	if err != nil {
		return nil, fmt.Errorf("range-diff failed: %w", err)
	}
	return ParseRangeDiff(output)
}

// rangeDiffLine matches range-diff pairing headers such as
//
//	1:  4f2b8a1 =  1:  9c3d7e2 Add retry budget
//	2:  77ac901 <  -:  ------- Debug logging
//
// Indented interdiff hunks under a ! pairing do not match.
var rangeDiffLine = regexp.MustCompile(`^\s*(?:\d+|-):\s+(\S+)\s+([=!<>])\s+(?:\d+|-):\s+(\S+)\s*(.*)$`)

// ParseRangeDiff parses git range-diff output into per-commit entries
func ParseRangeDiff(output string) (*RangeDiffSummary, error) {
	summary := &RangeDiffSummary{}

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Interdiff detail lines are indented beyond the pairing header
		if strings.HasPrefix(line, "    ") {
			continue
		}

		match := rangeDiffLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		entry := RangeDiffEntry{
			LeftSHA:  strings.Trim(match[1], "-"),
			RightSHA: strings.Trim(match[3], "-"),
			Subject:  strings.TrimSpace(match[4]),
		}

		switch match[2] {
		case "=":
			entry.Disposition = RangeDiffEqual
			summary.Equal++
		case "!":
			entry.Disposition = RangeDiffModified
			summary.Modified++
		case "<":
			entry.Disposition = RangeDiffOnlyLeft
			summary.Dropped++
		case ">":
			entry.Disposition = RangeDiffOnlyRight
			summary.Added++
		default:
			return nil, fmt.Errorf("unexpected range-diff marker in line: %q", line)
		}

		summary.Entries = append(summary.Entries, entry)
	}

	return summary, nil
}
