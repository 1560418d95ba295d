package git

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxPatchIDParallel bounds concurrent git invocations when fingerprinting
// commit ranges
const maxPatchIDParallel = 4

// PatchID computes the stable patch id for a commit. Two commits with the
// same patch id carry the same change regardless of SHA, committer or
// whitespace-only context drift.
func PatchID(ctx context.Context, sha string) (string, error) {
	diff, err := RunGitCommandRawWithContext(ctx, "diff-tree", "-p", sha)
	if err != nil {
		return "", fmt.Errorf("failed to read diff for %s: %w", sha, err)
	}

	output, err := RunGitCommandWithInputAndContext(ctx, diff, "patch-id", "--stable")
	if err != nil {
		return "", fmt.Errorf("git patch-id failed for %s: %w", sha, err)
	}

	// Output is "<patch-id> <commit-id>"; empty for commits with no diff
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// BatchPatchIDs computes patch ids for a set of commits with bounded
// parallelism. The result maps SHA to patch id; commits with an empty
// diff map to the empty string.
func BatchPatchIDs(ctx context.Context, shas []string) (map[string]string, error) {
	ids := make([]string, len(shas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPatchIDParallel)

	for i, sha := range shas {
		g.Go(func() error {
			id, err := PatchID(gctx, sha)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(shas))
	for i, sha := range shas {
		result[sha] = ids[i]
	}
	return result, nil
}
