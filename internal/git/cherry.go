package git

import (
	"context"
	"fmt"
	"strings"
)

// CherryMark is one line of git cherry output: a commit on the branch and
// whether an equivalent patch already exists upstream
type CherryMark struct {
	SHA        string
	Equivalent bool
}

// CherryCommits runs git cherry upstream branch and returns one mark per
// commit, oldest first. Equivalent commits are those whose patch already
// appears upstream under a different SHA.
func CherryCommits(ctx context.Context, upstream, branch string) ([]CherryMark, error) {
	output, err := RunGitCommandWithContext(ctx, "cherry", upstream, branch)
	if err != nil {
		return nil, fmt.Errorf("git cherry failed for %s..%s: %w", upstream, branch, err)
	}
	return parseCherryOutput(output)
}

// UnpickedCommits returns the SHAs of commits on branch whose patches do
// not already exist upstream, oldest first
func UnpickedCommits(ctx context.Context, upstream, branch string) ([]string, error) {
	marks, err := CherryCommits(ctx, upstream, branch)
	if err != nil {
		return nil, err
	}

	var shas []string
	for _, mark := range marks {
		if !mark.Equivalent {
			shas = append(shas, mark.SHA)
		}
	}
	return shas, nil
}

// IsFullyLanded checks whether every patch on branch already exists
// upstream, either by ancestry or by patch equivalence
func IsFullyLanded(ctx context.Context, upstream, branch string) (bool, error) {
	branchRev, err := GetRevision(ctx, branch)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", branch, err)
	}

	// Fast path: branch tip reachable from upstream
	reachable, err := IsAncestor(branchRev, upstream)
	if err == nil && reachable {
		return true, nil
	}

	marks, err := CherryCommits(ctx, upstream, branch)
	if err != nil {
		return false, err
	}

	for _, mark := range marks {
		if !mark.Equivalent {
			return false, nil
		}
	}
	return true, nil
}

// parseCherryOutput parses git cherry lines of the form "+ <sha>" or
// "- <sha>". Lines with - mark patches already present upstream.
func parseCherryOutput(output string) ([]CherryMark, error) {
	if output == "" {
		return nil, nil
	}

	var marks []CherryMark
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("unexpected git cherry line: %q", line)
		}

		switch fields[0] {
		case "+":
			marks = append(marks, CherryMark{SHA: fields[1], Equivalent: false})
		case "-":
			marks = append(marks, CherryMark{SHA: fields[1], Equivalent: true})
		default:
			return nil, fmt.Errorf("unexpected git cherry marker: %q", line)
		}
	}

	return marks, nil
}
