package git_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

func TestParseRangeDiff(t *testing.T) {
	t.Run("parses all four dispositions", func(t *testing.T) {
		output := `1:  4f2b8a1 =  1:  9c3d7e2 Add retry budget
2:  77ac901 !  2:  83def01 Tune limits
    @@ Commit message
    -old line
    +new line
3:  aa11b22 <  -:  ------- Debug logging
-:  ------- >  3:  bb22c33 Fix typo
`
		summary, err := git.ParseRangeDiff(output)
		require.NoError(t, err)

		require.Len(t, summary.Entries, 4)
		require.Equal(t, 1, summary.Equal)
		require.Equal(t, 1, summary.Modified)
		require.Equal(t, 1, summary.Dropped)
		require.Equal(t, 1, summary.Added)
		require.False(t, summary.Clean())

		require.Equal(t, git.RangeDiffEqual, summary.Entries[0].Disposition)
		require.Equal(t, "4f2b8a1", summary.Entries[0].LeftSHA)
		require.Equal(t, "9c3d7e2", summary.Entries[0].RightSHA)
		require.Equal(t, "Add retry budget", summary.Entries[0].Subject)

		require.Equal(t, git.RangeDiffModified, summary.Entries[1].Disposition)

		require.Equal(t, git.RangeDiffOnlyLeft, summary.Entries[2].Disposition)
		require.Equal(t, "aa11b22", summary.Entries[2].LeftSHA)
		require.Empty(t, summary.Entries[2].RightSHA)

		require.Equal(t, git.RangeDiffOnlyRight, summary.Entries[3].Disposition)
		require.Empty(t, summary.Entries[3].LeftSHA)
		require.Equal(t, "bb22c33", summary.Entries[3].RightSHA)
	})

	t.Run("skips interdiff detail lines", func(t *testing.T) {
		output := `1:  4f2b8a1 !  1:  9c3d7e2 Tune limits
    @@ config.go: func limits
    -	max := 5
    +	max := 7
`
		summary, err := git.ParseRangeDiff(output)
		require.NoError(t, err)
		require.Len(t, summary.Entries, 1)
		require.Equal(t, 1, summary.Modified)
	})

	t.Run("empty output yields a clean summary", func(t *testing.T) {
		summary, err := git.ParseRangeDiff("")
		require.NoError(t, err)
		require.Empty(t, summary.Entries)
		require.True(t, summary.Clean())
		require.Equal(t, "0 unchanged, 0 modified, 0 dropped, 0 added", summary.String())
	})
}

func TestRangeDiff(t *testing.T) {
	t.Run("reports cherry-picked commits as equal", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		ctx := context.Background()

		// Land the feature commits on a branch cut from main
		err := scene.Repo.CreateAndCheckoutBranch("landing")
		require.NoError(t, err)
		featureSHAs, err := scene.Repo.RunGitCommandAndGetOutput("rev-list", "--reverse", "main..feature")
		require.NoError(t, err)
		for _, sha := range strings.Fields(featureSHAs) {
			require.NoError(t, scene.Repo.RunGitCommand("cherry-pick", sha))
		}

		summary, err := git.RangeDiff(ctx, "main", "feature", "main", "landing")
		require.NoError(t, err)
		require.Equal(t, 2, summary.Equal)
		require.Zero(t, summary.Modified)
		require.True(t, summary.Clean())
	})

	t.Run("reports a dropped commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		ctx := context.Background()

		// Land only the first of the two feature commits
		err := scene.Repo.CreateAndCheckoutBranch("landing")
		require.NoError(t, err)
		featureSHAs, err := scene.Repo.RunGitCommandAndGetOutput("rev-list", "--reverse", "main..feature")
		require.NoError(t, err)
		first := strings.Fields(featureSHAs)[0]
		require.NoError(t, scene.Repo.RunGitCommand("cherry-pick", first))

		summary, err := git.RangeDiff(ctx, "main", "feature", "main", "landing")
		require.NoError(t, err)
		require.Equal(t, 1, summary.Equal)
		require.Equal(t, 1, summary.Dropped)
		require.False(t, summary.Clean())
	})
}
