package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/actions"
	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/testhelpers"
	"regraft.dev/regraft/testhelpers/scenario"
)

func TestStatusAction(t *testing.T) {
	t.Run("reports a quiet repository", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.BasicSceneSetup)

		require.NoError(t, actions.StatusAction(context.Background(), s.Context))
	})

	t.Run("reports finished landings", func(t *testing.T) {
		s := landedScenario(t)

		require.NoError(t, actions.StatusAction(context.Background(), s.Context))
	})

	t.Run("reports an interrupted landing", func(t *testing.T) {
		s := conflictedScenario(t, engine.StartOptions{})

		require.NoError(t, actions.StatusAction(context.Background(), s.Context))
		require.True(t, s.Engine.HasSession())
	})
}
