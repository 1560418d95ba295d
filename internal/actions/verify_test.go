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

func TestVerifyAction(t *testing.T) {
	t.Run("passes a faithful landing", func(t *testing.T) {
		s := landedScenario(t)

		err := actions.VerifyAction(context.Background(), s.Context, actions.VerifyOptions{SourceBranch: "feature"})
		require.NoError(t, err)
	})

	t.Run("passes picks rewritten only by their annotation", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.DivergedSceneSetup)
		ctx := context.Background()

		result, err := s.Engine.StartPick(ctx, "feature", nil, engine.StartOptions{})
		require.NoError(t, err)
		require.Equal(t, engine.LandDone, result.Result)

		err = actions.VerifyAction(ctx, s.Context, actions.VerifyOptions{SourceBranch: "feature"})
		require.NoError(t, err)
	})

	t.Run("fails when commits were dropped", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.DivergedSceneSetup)
		ctx := context.Background()
		tip := testhelpers.Must(s.Scene.Repo.GetRevision("feature"))

		result, err := s.Engine.StartPick(ctx, "feature", []string{tip}, engine.StartOptions{NoAnnotate: true})
		require.NoError(t, err)
		require.Equal(t, engine.LandDone, result.Result)

		err = actions.VerifyAction(ctx, s.Context, actions.VerifyOptions{SourceBranch: "feature"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "landing differs from the source branch")
	})

	t.Run("requires a landing branch", func(t *testing.T) {
		s := scenario.NewScenario(t, testhelpers.FeatureSceneSetup)

		err := actions.VerifyAction(context.Background(), s.Context, actions.VerifyOptions{SourceBranch: "feature"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "no landing branch landing/feature to verify")
	})
}
