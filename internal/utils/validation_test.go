package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/testhelpers"
)

func TestIsInteractive(t *testing.T) {
	t.Run("forced off for tests", func(t *testing.T) {
		t.Setenv("REGRAFT_TEST_NO_INTERACTIVE", "1")
		require.False(t, IsInteractive())
	})

	t.Run("forced off by the non-interactive flag", func(t *testing.T) {
		t.Setenv("REGRAFT_TEST_NO_INTERACTIVE", "")
		t.Setenv("REGRAFT_NON_INTERACTIVE", "1")
		require.False(t, IsInteractive())
	})

	t.Run("false without a terminal", func(t *testing.T) {
		t.Setenv("REGRAFT_TEST_NO_INTERACTIVE", "")
		t.Setenv("REGRAFT_NON_INTERACTIVE", "")
		// Test runs never have a tty on stdin
		require.False(t, IsInteractive())
	})
}

func TestHasUncommittedChanges(t *testing.T) {
	t.Run("false for a clean worktree", func(t *testing.T) {
		testhelpers.NewScene(t, testhelpers.BasicSceneSetup)

		require.False(t, HasUncommittedChanges(context.Background()))
	})

	t.Run("true with a modified tracked file", func(t *testing.T) {
		s := testhelpers.NewScene(t, testhelpers.BasicSceneSetup)
		require.NoError(t, s.Repo.WriteFile("1_test.txt", "edited"))

		require.True(t, HasUncommittedChanges(context.Background()))
	})
}
