package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

func TestCommitsBetween(t *testing.T) {
	t.Run("returns the source-only commits oldest first", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)

		commits, err := git.CommitsBetween("main", "feature")
		require.NoError(t, err)
		require.Len(t, commits, 2)
		require.Equal(t, "feature work 1", commits[0].Subject)
		require.Equal(t, "feature work 2", commits[1].Subject)
	})

	t.Run("fills in author and short SHA", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)

		commits, err := git.CommitsBetween("main", "feature")
		require.NoError(t, err)
		require.NotEmpty(t, commits)

		first := commits[0]
		require.Equal(t, "Test User", first.Author)
		require.Len(t, first.ShortSHA, 7)
		require.Equal(t, first.SHA[:7], first.ShortSHA)
		require.False(t, first.IsMerge)
		require.False(t, first.Date.IsZero())

		expectedSHA, err := scene.Repo.RunGitCommandAndGetOutput("rev-list", "--reverse", "main..feature")
		require.NoError(t, err)
		require.Contains(t, expectedSHA, first.SHA)
	})

	t.Run("marks merge commits", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)

		require.NoError(t, scene.Repo.RunGitCommand("checkout", "feature"))
		require.NoError(t, scene.Repo.RunGitCommand("merge", "--no-ff", "-m", "merge main", "main"))

		commits, err := git.CommitsBetween("main", "feature")
		require.NoError(t, err)

		var merges int
		for _, commit := range commits {
			if commit.IsMerge {
				merges++
				require.Equal(t, "merge main", commit.Subject)
			}
		}
		require.Equal(t, 1, merges)
	})

	t.Run("empty range yields no commits", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		commits, err := git.CommitsBetween("main", "main")
		require.NoError(t, err)
		require.Empty(t, commits)
	})
}

func TestCommitSHAsBetween(t *testing.T) {
	t.Run("matches rev-list order", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)

		shas, err := git.CommitSHAsBetween("main", "feature")
		require.NoError(t, err)

		expected := featureSHAsOldestFirst(t, scene)
		require.Equal(t, expected, shas)
	})
}

func TestChangedFiles(t *testing.T) {
	t.Run("lists the files touched by the source branch", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)

		files, err := git.ChangedFiles(context.Background(), "main", "feature")
		require.NoError(t, err)
		require.Equal(t, []string{"f1_test.txt", "f2_test.txt"}, files)
	})

	t.Run("empty when nothing changed", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		files, err := git.ChangedFiles(context.Background(), "main", "main")
		require.NoError(t, err)
		require.Empty(t, files)
	})
}

func TestDiffStat(t *testing.T) {
	t.Run("summarizes the range", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)

		stat, err := git.DiffStat(context.Background(), "main", "feature")
		require.NoError(t, err)
		require.Contains(t, stat, "2 files changed")
	})

	t.Run("empty for an empty range", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		stat, err := git.DiffStat(context.Background(), "main", "main")
		require.NoError(t, err)
		require.Empty(t, stat)
	})
}
