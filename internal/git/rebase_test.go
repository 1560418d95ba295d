package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

func TestRebase(t *testing.T) {
	t.Run("replays the branch onto the new base", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)

		result, err := git.Rebase(context.Background(), "feature", "main", "main", false)
		require.NoError(t, err)
		require.Equal(t, git.RebaseDone, result)

		// The branch now contains main's commit below the replayed work
		ok, err := git.IsAncestor("main", "feature")
		require.NoError(t, err)
		require.True(t, ok)

		testhelpers.ExpectCommits(t, scene.Repo, "feature", []string{
			"feature work 2",
			"feature work 1",
			"main moved",
		})
	})

	t.Run("restores the original checkout afterwards", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)

		result, err := git.Rebase(context.Background(), "feature", "main", "main", false)
		require.NoError(t, err)
		require.Equal(t, git.RebaseDone, result)

		current, err := scene.Repo.CurrentBranchName()
		require.NoError(t, err)
		require.Equal(t, "main", current)
	})

	t.Run("stops on a conflict and leaves the rebase in progress", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		featureSHA, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)

		result, err := git.Rebase(context.Background(), "feature", "main", "main", false)
		require.NoError(t, err)
		require.Equal(t, git.RebaseConflict, result)
		require.True(t, git.IsRebaseInProgress(context.Background()))

		// REBASE_HEAD names the commit that failed to replay
		rebaseHead, err := git.GetRebaseHead()
		require.NoError(t, err)
		require.Equal(t, featureSHA, rebaseHead)

		require.NoError(t, git.RebaseAbort(context.Background()))
		require.False(t, git.IsRebaseInProgress(context.Background()))

		// The branch itself never moved
		currentFeatureSHA, err := scene.Repo.GetRevision("feature")
		require.NoError(t, err)
		require.Equal(t, featureSHA, currentFeatureSHA)
	})
}

func TestRebaseContinue(t *testing.T) {
	t.Run("finishes the replay after conflicts are staged", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		result, err := git.Rebase(context.Background(), "feature", "main", "main", false)
		require.NoError(t, err)
		require.Equal(t, git.RebaseConflict, result)

		require.NoError(t, scene.Repo.WriteFile("shared.txt", "resolved version\n"))
		require.NoError(t, scene.Repo.MarkConflictsAsResolved())

		result, err = git.RebaseContinue(context.Background())
		require.NoError(t, err)
		require.Equal(t, git.RebaseDone, result)
		require.False(t, git.IsRebaseInProgress(context.Background()))

		// The replayed commit sits on a detached HEAD above main
		subject, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
		require.NoError(t, err)
		require.Equal(t, "feature edit", subject)

		content, err := scene.Repo.ReadFile("shared.txt")
		require.NoError(t, err)
		require.Equal(t, "resolved version\n", content)
	})
}

func TestRebaseSkip(t *testing.T) {
	t.Run("drops the conflicted commit", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		result, err := git.Rebase(context.Background(), "feature", "main", "main", false)
		require.NoError(t, err)
		require.Equal(t, git.RebaseConflict, result)

		result, err = git.RebaseSkip(context.Background())
		require.NoError(t, err)
		require.Equal(t, git.RebaseDone, result)
		require.False(t, git.IsRebaseInProgress(context.Background()))

		// Nothing was replayed, HEAD matches main's tip
		headSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		mainSHA, err := scene.Repo.GetRevision("main")
		require.NoError(t, err)
		require.Equal(t, mainSHA, headSHA)
	})
}

func TestGetRebaseHead(t *testing.T) {
	t.Run("fails when no rebase is running", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		_, err := git.GetRebaseHead()
		require.Error(t, err)
	})
}
