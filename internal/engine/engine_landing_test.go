package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/config"
	"regraft.dev/regraft/internal/engine"
	regrafterrors "regraft.dev/regraft/internal/errors"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

func TestStartReplay(t *testing.T) {
	t.Run("rebases the unique range onto the baseline tip", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)
		featureSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		result, err := e.StartReplay(context.Background(), "feature", engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandDone, result.Result)
		require.Equal(t, engine.StrategyReplay, result.Strategy)
		require.Equal(t, "landing/feature", result.LandingBranch)
		require.Equal(t, 2, result.LandedCount)
		require.Equal(t, 2, result.TotalPlanned)
		require.True(t, strings.HasPrefix(result.BackupTag, engine.BackupTagPrefix+"feature/"))

		testhelpers.ExpectCommits(t, s.Repo, "landing/feature",
			[]string{"feature work 2", "feature work 1", "main moved", "base"})

		// The source branch never moves and the checkout comes back
		require.Equal(t, featureSHA, testhelpers.Must(s.Repo.GetRevision("feature")))
		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
		require.False(t, e.HasSession())

		meta, err := git.ReadMetadataRef("landing/feature")
		require.NoError(t, err)
		require.NotNil(t, meta.Strategy)
		require.Equal(t, "replay", *meta.Strategy)
		require.NotNil(t, meta.SourceBranch)
		require.Equal(t, "feature", *meta.SourceBranch)
		require.NotNil(t, meta.BackupTag)
		require.Equal(t, result.BackupTag, *meta.BackupTag)
		require.NotNil(t, meta.LandedAt)
	})

	t.Run("records the backup tag at the source tip", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)
		featureSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		result, err := e.StartReplay(context.Background(), "feature", engine.StartOptions{})
		require.NoError(t, err)

		tags, err := s.Repo.ListTags(engine.BackupTagPrefix + "feature/")
		require.NoError(t, err)
		require.Equal(t, []string{result.BackupTag}, tags)

		tagged, err := git.ResolveTag(context.Background(), result.BackupTag)
		require.NoError(t, err)
		require.Equal(t, featureSHA, tagged)
	})

	t.Run("does nothing when every change is already on the baseline", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, s.Repo.CreateBranch("copy"))
		e := newTestEngine(t, s)

		result, err := e.StartReplay(context.Background(), "copy", engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandNothingToDo, result.Result)
		require.False(t, e.BranchExists("landing/copy"))
		require.False(t, e.HasSession())

		tags, err := s.Repo.ListTags(engine.BackupTagPrefix)
		require.NoError(t, err)
		require.Empty(t, tags)
	})

	t.Run("stops on a conflict and leaves the session resumable", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)
		e := newTestEngine(t, s)

		result, err := e.StartReplay(context.Background(), "feature", engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandConflict, result.Result)
		require.Equal(t, engine.StrategyReplay, result.Strategy)
		require.Equal(t, []string{"shared.txt"}, result.ConflictFiles)
		require.Equal(t, 1, result.TotalPlanned)
		require.Equal(t, 0, result.LandedCount)

		require.True(t, s.Repo.RebaseInProgress())
		require.True(t, e.HasSession())
		require.True(t, config.HasContinuationState(s.Dir))

		session, err := e.Session()
		require.NoError(t, err)
		require.Equal(t, "replay", session.Strategy)
		require.Equal(t, "landing/feature", session.LandingBranch)
		require.Equal(t, "feature", session.SourceBranch)
	})
}

func TestStartPick(t *testing.T) {
	t.Run("picks the planned set onto a branch cut from the baseline", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)
		featureSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		result, err := e.StartPick(context.Background(), "feature", nil, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandDone, result.Result)
		require.Equal(t, engine.StrategyPick, result.Strategy)
		require.Equal(t, 2, result.LandedCount)
		require.Equal(t, 2, result.TotalPlanned)

		testhelpers.ExpectCommits(t, s.Repo, "landing/feature",
			[]string{"feature work 2", "feature work 1", "main moved", "base"})

		// Picked commits carry the source SHA by default
		body, err := s.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%B", "landing/feature")
		require.NoError(t, err)
		require.Contains(t, body, "(cherry picked from commit "+featureSHA+")")

		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
		require.False(t, e.HasSession())
	})

	t.Run("lands only the requested commits", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)
		tip := testhelpers.Must(s.Repo.GetRevision("feature"))

		// Abbreviated SHAs are resolved before anything starts
		result, err := e.StartPick(context.Background(), "feature", []string{tip[:7]}, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandDone, result.Result)
		require.Equal(t, 1, result.LandedCount)
		require.Equal(t, 1, result.TotalPlanned)
		testhelpers.ExpectCommits(t, s.Repo, "landing/feature",
			[]string{"feature work 2", "main moved", "base"})
	})

	t.Run("leaves messages alone with NoAnnotate", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.StartPick(context.Background(), "feature", nil, engine.StartOptions{NoAnnotate: true})
		require.NoError(t, err)

		body, err := s.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%B", "landing/feature")
		require.NoError(t, err)
		require.NotContains(t, body, "cherry picked from")
	})

	t.Run("rejects revisions that are not commits", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.StartPick(context.Background(), "feature", []string{"zzzzzzz"}, engine.StartOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "not a commit")
		require.False(t, e.BranchExists("landing/feature"))
		require.False(t, e.HasSession())
	})

	t.Run("stops on the first conflicting pick", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)
		require.NoError(t, s.CommitOnBranch("feature", "feature extra", "fx"))
		e := newTestEngine(t, s)

		result, err := e.StartPick(context.Background(), "feature", nil, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandConflict, result.Result)
		require.Equal(t, []string{"shared.txt"}, result.ConflictFiles)
		require.Equal(t, 0, result.LandedCount)
		require.Equal(t, 2, result.TotalPlanned)

		// The pick runs on the landing branch itself
		require.True(t, s.Repo.CherryPickInProgress())
		require.Equal(t, "landing/feature", testhelpers.Must(s.Repo.CurrentBranchName()))
		require.True(t, e.HasSession())
	})
}

func TestStartMerge(t *testing.T) {
	t.Run("lands the source behind a single merge commit", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.FeatureSceneSetup)
		e := newTestEngine(t, s)
		featureSHA := testhelpers.Must(s.Repo.GetRevision("feature"))

		result, err := e.StartMerge(context.Background(), "feature", engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandDone, result.Result)
		require.Equal(t, engine.StrategyMerge, result.Strategy)
		require.Equal(t, 2, result.LandedCount)

		subject, err := s.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%s", "landing/feature")
		require.NoError(t, err)
		require.Equal(t, "Merge branch 'feature' into landing/feature", subject)

		parents, err := s.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%P", "landing/feature")
		require.NoError(t, err)
		require.Len(t, strings.Fields(parents), 2)

		// History lands as-is: the source tip is reachable unchanged
		reachable, err := s.Repo.IsAncestor(featureSHA, "landing/feature")
		require.NoError(t, err)
		require.True(t, reachable)

		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
		require.False(t, e.HasSession())

		meta, err := git.ReadMetadataRef("landing/feature")
		require.NoError(t, err)
		require.NotNil(t, meta.Strategy)
		require.Equal(t, "merge", *meta.Strategy)
	})

	t.Run("does nothing when the source adds no changes", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, s.Repo.CreateBranch("copy"))
		e := newTestEngine(t, s)

		result, err := e.StartMerge(context.Background(), "copy", engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandNothingToDo, result.Result)
		require.False(t, e.BranchExists("landing/copy"))
		require.False(t, e.HasSession())
	})

	t.Run("stops on a conflicting merge", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)
		e := newTestEngine(t, s)

		result, err := e.StartMerge(context.Background(), "feature", engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandConflict, result.Result)
		require.Equal(t, engine.StrategyMerge, result.Strategy)
		require.Equal(t, []string{"shared.txt"}, result.ConflictFiles)

		// A conflicted merge stays on the landing branch with MERGE_HEAD set
		require.True(t, git.IsMergeInProgress(context.Background()))
		require.Equal(t, "landing/feature", testhelpers.Must(s.Repo.CurrentBranchName()))
		require.True(t, e.HasSession())
	})
}

func TestLandFiles(t *testing.T) {
	t.Run("copies the named files and commits them once", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)
		sourceTip := testhelpers.Must(s.Repo.GetRevision("feature"))

		result, err := e.LandFiles(context.Background(), "feature", []string{"f1_test.txt"}, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandDone, result.Result)
		require.Equal(t, engine.StrategyFiles, result.Strategy)
		require.Equal(t, 1, result.LandedCount)

		// One commit, no source history
		testhelpers.ExpectCommits(t, s.Repo, "landing/feature",
			[]string{"Land 1 file(s) from feature", "main moved", "base"})

		body, err := s.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%B", "landing/feature")
		require.NoError(t, err)
		require.Contains(t, body, "(landed from commit "+sourceTip+")")

		content, err := git.ShowFileAt(context.Background(), "landing/feature", "f1_test.txt")
		require.NoError(t, err)
		require.Equal(t, "feature work 1", content)

		// Unrequested files stay behind
		exists, err := git.PathExistsAt(context.Background(), "landing/feature", "f2_test.txt")
		require.NoError(t, err)
		require.False(t, exists)

		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
		clean, err := git.IsWorktreeClean()
		require.NoError(t, err)
		require.True(t, clean)
		require.False(t, e.HasSession())
	})

	t.Run("does nothing when the files match the baseline", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)

		result, err := e.LandFiles(context.Background(), "feature", []string{"base_test.txt"}, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandNothingToDo, result.Result)
		require.False(t, e.BranchExists("landing/feature"))
		require.False(t, e.HasSession())
		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
	})

	t.Run("requires at least one path", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.LandFiles(context.Background(), "feature", nil, engine.StartOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no paths given")
	})

	t.Run("fails for an unknown source branch", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.LandFiles(context.Background(), "ghost", []string{"some.txt"}, engine.StartOptions{})
		require.ErrorIs(t, err, regrafterrors.ErrBranchNotFound)
	})
}

func TestApplyPatches(t *testing.T) {
	t.Run("applies an exported series onto the baseline", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.DivergedSceneSetup)
		e := newTestEngine(t, s)

		root, err := s.Repo.RunGitCommandAndGetOutput("rev-list", "--max-parents=0", "main")
		require.NoError(t, err)

		// Patches live outside the worktree so the preflight stays clean
		patchDir := filepath.Join(t.TempDir(), "feature-patches")
		require.NoError(t, os.MkdirAll(patchDir, 0750))
		patches, err := git.FormatPatch(context.Background(), root, "feature", patchDir)
		require.NoError(t, err)
		require.Len(t, patches, 2)

		result, err := e.ApplyPatches(context.Background(), patchDir, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandDone, result.Result)
		require.Equal(t, engine.StrategyApply, result.Strategy)
		require.Equal(t, "landing/feature-patches", result.LandingBranch)
		require.Equal(t, 2, result.LandedCount)
		require.Empty(t, result.BackupTag)

		testhelpers.ExpectCommits(t, s.Repo, "landing/feature-patches",
			[]string{"feature work 2", "feature work 1", "main moved", "base"})

		// git am preserves the original authorship
		author, err := s.Repo.RunGitCommandAndGetOutput("log", "-1", "--format=%an", "landing/feature-patches")
		require.NoError(t, err)
		require.Equal(t, "Test User", author)

		require.Equal(t, "main", testhelpers.Must(s.Repo.CurrentBranchName()))
		require.False(t, e.HasSession())

		meta, err := git.ReadMetadataRef("landing/feature-patches")
		require.NoError(t, err)
		require.NotNil(t, meta.Strategy)
		require.Equal(t, "apply", *meta.Strategy)
		require.Nil(t, meta.SourceBranch)
	})

	t.Run("does nothing for a directory without patches", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		result, err := e.ApplyPatches(context.Background(), t.TempDir(), engine.StartOptions{})
		require.NoError(t, err)
		require.Equal(t, engine.LandNothingToDo, result.Result)
		require.False(t, e.HasSession())
	})

	t.Run("fails for a missing directory", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		e := newTestEngine(t, s)

		_, err := e.ApplyPatches(context.Background(), filepath.Join(s.Dir, "no-such-dir"), engine.StartOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read patch directory")
	})

	t.Run("stops when a patch does not apply", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)
		e := newTestEngine(t, s)

		mergeBase := testhelpers.Must(s.Repo.GetRevision("main~1"))
		patchDir := filepath.Join(t.TempDir(), "fix")
		require.NoError(t, os.MkdirAll(patchDir, 0750))
		_, err := git.FormatPatch(context.Background(), mergeBase, "feature", patchDir)
		require.NoError(t, err)

		result, err := e.ApplyPatches(context.Background(), patchDir, engine.StartOptions{})
		require.NoError(t, err)

		require.Equal(t, engine.LandConflict, result.Result)
		require.Equal(t, engine.StrategyApply, result.Strategy)
		require.Equal(t, []string{"shared.txt"}, result.ConflictFiles)
		require.True(t, git.IsMailboxInProgress(context.Background()))

		session, err := e.Session()
		require.NoError(t, err)
		require.Equal(t, "apply", session.Strategy)
	})
}
