package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/testhelpers"
	"regraft.dev/regraft/testhelpers/scenario"
)

func TestAbortAction(t *testing.T) {
	t.Run("unwinds the landing", func(t *testing.T) {
		s := conflictedScenario(t, engine.StartOptions{})

		err := actions.AbortAction(context.Background(), s.Context, actions.AbortOptions{Force: true})
		require.NoError(t, err)

		s.ExpectBranch("main")
		require.False(t, s.Engine.HasSession())
		require.False(t, git.BranchExists("landing/feature"))
	})

	t.Run("restores the source from its backup", func(t *testing.T) {
		s := conflictedScenario(t, engine.StartOptions{})
		before := testhelpers.Must(s.Scene.Repo.GetRevision("feature"))

		err := actions.AbortAction(context.Background(), s.Context, actions.AbortOptions{
			RestoreBackup: true,
			Force:         true,
		})
		require.NoError(t, err)
		require.Equal(t, before, testhelpers.Must(s.Scene.Repo.GetRevision("feature")))
	})

	t.Run("refuses restore without a backup", func(t *testing.T) {
		s := conflictedScenario(t, engine.StartOptions{NoBackup: true})

		err := actions.AbortAction(context.Background(), s.Context, actions.AbortOptions{
			RestoreBackup: true,
			Force:         true,
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no backup tag recorded")
		require.True(t, s.Engine.HasSession())
	})

	t.Run("errors without a landing in progress", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		err := actions.AbortAction(context.Background(), s.Context, actions.AbortOptions{Force: true})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no landing in progress")
	})
}
