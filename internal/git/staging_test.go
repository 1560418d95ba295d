package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

func TestStagingChecks(t *testing.T) {
	t.Run("clean worktree has nothing pending", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		staged, err := git.HasStagedChanges()
		require.NoError(t, err)
		require.False(t, staged)

		unstaged, err := git.HasUnstagedChanges()
		require.NoError(t, err)
		require.False(t, unstaged)

		untracked, err := git.HasUntrackedFiles()
		require.NoError(t, err)
		require.False(t, untracked)

		clean, err := git.IsWorktreeClean()
		require.NoError(t, err)
		require.True(t, clean)
	})

	t.Run("detects unstaged edits to tracked files", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		// Modify a tracked file without staging it
		require.NoError(t, scene.Repo.WriteFile("1_test.txt", "edited\n"))

		unstaged, err := git.HasUnstagedChanges()
		require.NoError(t, err)
		require.True(t, unstaged)

		staged, err := git.HasStagedChanges()
		require.NoError(t, err)
		require.False(t, staged)

		clean, err := git.IsWorktreeClean()
		require.NoError(t, err)
		require.False(t, clean)
	})

	t.Run("detects untracked files", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.Repo.WriteFile("new_test.txt", "new\n"))

		untracked, err := git.HasUntrackedFiles()
		require.NoError(t, err)
		require.True(t, untracked)

		clean, err := git.IsWorktreeClean()
		require.NoError(t, err)
		require.False(t, clean)
	})
}

func TestStageAll(t *testing.T) {
	t.Run("stages edits and untracked files together", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.Repo.WriteFile("1_test.txt", "edited\n"))
		require.NoError(t, scene.Repo.WriteFile("new_test.txt", "new\n"))

		require.NoError(t, git.StageAll(context.Background()))

		staged, err := git.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)

		untracked, err := git.HasUntrackedFiles()
		require.NoError(t, err)
		require.False(t, untracked)
	})
}

func TestStagePaths(t *testing.T) {
	t.Run("stages only the named paths", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.Repo.WriteFile("a_test.txt", "a\n"))
		require.NoError(t, scene.Repo.WriteFile("b_test.txt", "b\n"))

		require.NoError(t, git.StagePaths(context.Background(), []string{"a_test.txt"}))

		staged, err := git.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)

		untracked, err := git.HasUntrackedFiles()
		require.NoError(t, err)
		require.True(t, untracked)
	})

	t.Run("does nothing for an empty path list", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, git.StagePaths(context.Background(), nil))

		staged, err := git.HasStagedChanges()
		require.NoError(t, err)
		require.False(t, staged)
	})
}

func TestCommit(t *testing.T) {
	t.Run("records staged changes with the message", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.NoError(t, scene.Repo.WriteFile("change_test.txt", "change\n"))
		require.NoError(t, git.StageAll(context.Background()))
		require.NoError(t, git.Commit(context.Background(), "Record the change"))

		subject, err := scene.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s")
		require.NoError(t, err)
		require.Equal(t, "Record the change", subject)

		clean, err := git.IsWorktreeClean()
		require.NoError(t, err)
		require.True(t, clean)
	})

	t.Run("fails with nothing staged", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		err := git.Commit(context.Background(), "empty")
		require.Error(t, err)
	})
}

func TestHardReset(t *testing.T) {
	t.Run("moves the branch and discards the worktree", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		firstSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))
		require.NoError(t, scene.Repo.WriteFile("1_test.txt", "dirty\n"))

		require.NoError(t, git.HardReset(context.Background(), firstSHA))

		currentSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, firstSHA, currentSHA)

		unstaged, err := git.HasUnstagedChanges()
		require.NoError(t, err)
		require.False(t, unstaged)
	})
}

func TestSoftReset(t *testing.T) {
	t.Run("moves the branch and keeps the changes staged", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		firstSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)

		require.NoError(t, scene.Repo.CreateChangeAndCommit("2", "2"))

		require.NoError(t, git.SoftReset(context.Background(), firstSHA))

		currentSHA, err := scene.Repo.GetCurrentSHA()
		require.NoError(t, err)
		require.Equal(t, firstSHA, currentSHA)

		staged, err := git.HasStagedChanges()
		require.NoError(t, err)
		require.True(t, staged)
	})
}
