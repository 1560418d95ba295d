package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/engine"
	regrafterrors "regraft.dev/regraft/internal/errors"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

func TestBackupBranch(t *testing.T) {
	t.Run("tags the branch tip under the backup namespace", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		e := newTestEngine(t, s)
		featureSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		tag, err := e.BackupBranch(context.Background(), "feature")
		require.NoError(t, err)
		require.Contains(t, tag, engine.BackupTagPrefix+"feature/")

		tagged, err := git.ResolveTag(context.Background(), tag)
		require.NoError(t, err)
		require.Equal(t, featureSHA, tagged)

		message, err := s.Repo.RunGitCommandAndGetOutput("tag", "-l", "--format=%(contents:subject)", tag)
		require.NoError(t, err)
		require.Equal(t, "regraft backup of feature", message)
	})

	t.Run("fails for a missing branch", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.BackupBranch(context.Background(), "ghost")
		require.ErrorIs(t, err, regrafterrors.ErrBranchNotFound)
	})
}

func TestListBackups(t *testing.T) {
	t.Run("filters by branch", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		e := newTestEngine(t, s)

		featureTag, err := e.BackupBranch(context.Background(), "feature")
		require.NoError(t, err)
		mainTag, err := e.BackupBranch(context.Background(), "main")
		require.NoError(t, err)

		featureOnly, err := e.ListBackups(context.Background(), "feature")
		require.NoError(t, err)
		require.Equal(t, []string{featureTag}, featureOnly)

		all, err := e.ListBackups(context.Background(), "")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{featureTag, mainTag}, all)
	})

	t.Run("returns nothing when no backups exist", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		backups, err := e.ListBackups(context.Background(), "main")
		require.NoError(t, err)
		require.Empty(t, backups)
	})
}

// pinnedBackupTags creates three backup tags for main with fixed creation
// dates, oldest first, so the newest-first listing order is deterministic
func pinnedBackupTags(t *testing.T, s *testhelpers.Scene) []string {
	t.Helper()

	rev := testhelpers.Must(s.Repo.GetRevision("main"))
	names := []string{
		engine.BackupTagPrefix + "main/20250101120000",
		engine.BackupTagPrefix + "main/20250102120000",
		engine.BackupTagPrefix + "main/20250103120000",
	}
	dates := []string{
		"2025-01-01T12:00:00+00:00",
		"2025-01-02T12:00:00+00:00",
		"2025-01-03T12:00:00+00:00",
	}
	for i, name := range names {
		_, err := git.RunGitCommandWithEnv(context.Background(),
			[]string{"GIT_COMMITTER_DATE=" + dates[i]},
			"tag", "-a", "-m", "regraft backup of main", name, rev)
		require.NoError(t, err)
	}
	return names
}

func TestPruneBackups(t *testing.T) {
	t.Run("deletes all but the newest", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)
		names := pinnedBackupTags(t, s)

		deleted, err := e.PruneBackups(context.Background(), "main", 1)
		require.NoError(t, err)
		require.Equal(t, []string{names[1], names[0]}, deleted)

		remaining, err := e.ListBackups(context.Background(), "main")
		require.NoError(t, err)
		require.Equal(t, []string{names[2]}, remaining)
	})

	t.Run("keeps everything when keep exceeds the count", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)
		pinnedBackupTags(t, s)

		deleted, err := e.PruneBackups(context.Background(), "main", 5)
		require.NoError(t, err)
		require.Nil(t, deleted)

		remaining, err := e.ListBackups(context.Background(), "main")
		require.NoError(t, err)
		require.Len(t, remaining, 3)
	})

	t.Run("treats negative keep as zero", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)
		names := pinnedBackupTags(t, s)

		deleted, err := e.PruneBackups(context.Background(), "main", -1)
		require.NoError(t, err)
		require.Equal(t, []string{names[2], names[1], names[0]}, deleted)

		remaining, err := e.ListBackups(context.Background(), "main")
		require.NoError(t, err)
		require.Empty(t, remaining)
	})

	t.Run("needs a branch name", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.PruneBackups(context.Background(), "", 1)
		require.Error(t, err)
		require.Contains(t, err.Error(), "prune needs a branch name")
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Run("moves a branch back to the tagged commit", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		e := newTestEngine(t, s)
		oldSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		tag, err := e.BackupBranch(context.Background(), "feature")
		require.NoError(t, err)

		require.NoError(t, s.CommitOnBranch("feature", "feature work 3", "f3"))
		require.NotEqual(t, oldSHA, testhelpers.Must(s.Repo.GetRevision("feature")))

		require.NoError(t, e.RestoreBackup(context.Background(), tag))
		require.Equal(t, oldSHA, testhelpers.Must(s.Repo.GetRevision("feature")))
		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
	})

	t.Run("recreates a branch that was deleted", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		e := newTestEngine(t, s)
		oldSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		tag, err := e.BackupBranch(context.Background(), "feature")
		require.NoError(t, err)
		require.NoError(t, s.Repo.DeleteBranch("feature"))

		require.NoError(t, e.RestoreBackup(context.Background(), tag))
		require.True(t, e.BranchExists("feature"))
		require.Equal(t, oldSHA, testhelpers.Must(s.Repo.GetRevision("feature")))
	})

	t.Run("hard resets when the branch is checked out", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)
		oldSHA := testhelpers.Must(s.Repo.GetRevision("main"))

		tag, err := e.BackupBranch(context.Background(), "main")
		require.NoError(t, err)
		require.NoError(t, s.Repo.CreateChangeAndCommit("2", "2"))

		require.NoError(t, e.RestoreBackup(context.Background(), tag))
		require.Equal(t, oldSHA, testhelpers.Must(s.Repo.GetRevision("main")))

		// The worktree follows the reset
		_, statErr := os.Stat(filepath.Join(s.Dir, "2_test.txt"))
		require.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects tags outside the backup namespace", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		err := e.RestoreBackup(context.Background(), "v1.0.0")
		require.Error(t, err)
		require.Contains(t, err.Error(), "is not a regraft backup tag")
	})

	t.Run("rejects a tag without a branch segment", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		err := e.RestoreBackup(context.Background(), engine.BackupTagPrefix+"noslash")
		require.Error(t, err)
		require.Contains(t, err.Error(), "malformed backup tag name")
	})

	t.Run("fails when the tag does not exist", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		err := e.RestoreBackup(context.Background(), engine.BackupTagPrefix+"feature/20250101120000")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to resolve backup tag")
	})
}
