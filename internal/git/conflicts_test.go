package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
)

const twoWayConflict = `first line
<<<<<<< HEAD
main version
=======
feature version
>>>>>>> feature
last line
`

const diff3Conflict = `<<<<<<< HEAD
main version
||||||| merged common ancestors
original
=======
feature version
>>>>>>> feature
`

func writeSceneFile(t *testing.T, scene *testhelpers.Scene, name, content string) string {
	t.Helper()
	path := filepath.Join(scene.Dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestUnmergedFiles(t *testing.T) {
	t.Run("returns nothing in a clean worktree", func(t *testing.T) {
		_ = testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		files, err := git.UnmergedFiles(context.Background())
		require.NoError(t, err)
		require.Empty(t, files)
	})

	t.Run("reports all three stages on a content conflict", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		// Merging feature into main conflicts on shared.txt
		err := scene.Repo.RunGitCommand("merge", "feature")
		require.Error(t, err)

		files, err := git.UnmergedFiles(context.Background())
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.Equal(t, "shared.txt", files[0].Path)
		require.True(t, files[0].HasBase)
		require.True(t, files[0].HasOurs)
		require.True(t, files[0].HasTheirs)
		require.False(t, files[0].AddedByBoth())
		require.False(t, files[0].DeletedOnOneSide())

		paths, err := git.UnmergedPaths(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"shared.txt"}, paths)
	})

	t.Run("classifies a file added on both sides", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.CreateChangeAndCommit("base", "base"); err != nil {
				return err
			}
			if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
				return err
			}
			if err := s.Repo.WriteFileAndCommit("new.txt", "feature side\n", "feature adds new.txt"); err != nil {
				return err
			}
			if err := s.Repo.CheckoutBranch("main"); err != nil {
				return err
			}
			return s.Repo.WriteFileAndCommit("new.txt", "main side\n", "main adds new.txt")
		})

		err := scene.Repo.RunGitCommand("merge", "feature")
		require.Error(t, err)

		files, err := git.UnmergedFiles(context.Background())
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.True(t, files[0].AddedByBoth())
	})

	t.Run("classifies a modify-delete conflict", func(t *testing.T) {
		scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
			if err := s.Repo.WriteFileAndCommit("doomed.txt", "content\n", "add doomed.txt"); err != nil {
				return err
			}
			if err := s.Repo.CreateAndCheckoutBranch("feature"); err != nil {
				return err
			}
			if err := s.Repo.WriteFileAndCommit("doomed.txt", "edited\n", "feature edits doomed.txt"); err != nil {
				return err
			}
			if err := s.Repo.CheckoutBranch("main"); err != nil {
				return err
			}
			if err := s.Repo.RunGitCommand("rm", "doomed.txt"); err != nil {
				return err
			}
			return s.Repo.RunGitCommand("commit", "-m", "main deletes doomed.txt")
		})

		err := scene.Repo.RunGitCommand("merge", "feature")
		require.Error(t, err)

		files, err := git.UnmergedFiles(context.Background())
		require.NoError(t, err)
		require.Len(t, files, 1)
		require.True(t, files[0].DeletedOnOneSide())
	})
}

func TestReadConflictHunks(t *testing.T) {
	t.Run("parses a two-way conflict", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "conflicted.txt", twoWayConflict)

		hunks, err := git.ReadConflictHunks(path)
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		require.Equal(t, 2, hunks[0].StartLine)
		require.Equal(t, "HEAD", hunks[0].OursLabel)
		require.Equal(t, "feature", hunks[0].TheirsLabel)
		require.Equal(t, []string{"main version"}, hunks[0].Ours)
		require.Equal(t, []string{"feature version"}, hunks[0].Theirs)
		require.False(t, hunks[0].HasBase)
	})

	t.Run("parses diff3 style with a base section", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "conflicted.txt", diff3Conflict)

		hunks, err := git.ReadConflictHunks(path)
		require.NoError(t, err)
		require.Len(t, hunks, 1)
		require.True(t, hunks[0].HasBase)
		require.Equal(t, []string{"original"}, hunks[0].Base)
	})

	t.Run("returns no hunks for a clean file", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "clean.txt", "nothing to see\n")

		hunks, err := git.ReadConflictHunks(path)
		require.NoError(t, err)
		require.Empty(t, hunks)

		has, err := git.HasConflictMarkers(path)
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("rejects an unterminated conflict", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "broken.txt", "<<<<<<< HEAD\nours\n=======\ntheirs\n")

		_, err := git.ReadConflictHunks(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unterminated")
	})
}

func TestResolveFile(t *testing.T) {
	t.Run("keeps ours", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "conflicted.txt", twoWayConflict)

		require.NoError(t, git.ResolveFile(path, git.ResolveOurs))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "first line\nmain version\nlast line\n", string(content))
	})

	t.Run("keeps theirs", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "conflicted.txt", twoWayConflict)

		require.NoError(t, git.ResolveFile(path, git.ResolveTheirs))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "first line\nfeature version\nlast line\n", string(content))
	})

	t.Run("union keeps both sides, ours first", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "conflicted.txt", twoWayConflict)

		require.NoError(t, git.ResolveFile(path, git.ResolveUnion))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "first line\nmain version\nfeature version\nlast line\n", string(content))
	})

	t.Run("drops the base section of diff3 conflicts", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "conflicted.txt", diff3Conflict)

		require.NoError(t, git.ResolveFile(path, git.ResolveUnion))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "main version\nfeature version\n", string(content))
	})

	t.Run("fails on a file without markers", func(t *testing.T) {
		scene := testhelpers.NewScene(t, nil)
		path := writeSceneFile(t, scene, "clean.txt", "nothing to resolve\n")

		err := git.ResolveFile(path, git.ResolveOurs)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no conflict markers")
	})

	t.Run("resolves a real merge conflict", func(t *testing.T) {
		scene := testhelpers.NewScene(t, testhelpers.ConflictSceneSetup)

		err := scene.Repo.RunGitCommand("merge", "feature")
		require.Error(t, err)

		path := filepath.Join(scene.Dir, "shared.txt")
		require.NoError(t, git.ResolveFile(path, git.ResolveUnion))

		content, err := scene.Repo.ReadFile("shared.txt")
		require.NoError(t, err)
		require.Equal(t, "main version\nfeature version\n", content)

		has, err := git.HasConflictMarkers(path)
		require.NoError(t, err)
		require.False(t, has)
	})
}
