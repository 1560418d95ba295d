package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/testhelpers"
)

func TestContinuationState(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through disk", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneNoChdir(t, nil)

		saved := &ContinuationState{
			Op:               OpPick,
			LandingBranch:    "landing/feature",
			SourceBranch:     "feature",
			CurrentSHA:       "aaa111",
			RemainingSHAs:    []string{"bbb222", "ccc333"},
			Annotate:         true,
			CheckedOutBranch: "main",
		}
		require.NoError(t, PersistContinuationState(scene.Dir, saved))
		require.True(t, HasContinuationState(scene.Dir))

		state, err := GetContinuationState(scene.Dir)
		require.NoError(t, err)
		require.Equal(t, saved, state)
	})

	t.Run("reports nothing to continue when the file is absent", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneNoChdir(t, nil)

		require.False(t, HasContinuationState(scene.Dir))
		_, err := GetContinuationState(scene.Dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no continuation state found")
	})

	t.Run("clear removes the state and tolerates absence", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneNoChdir(t, nil)

		require.NoError(t, PersistContinuationState(scene.Dir, &ContinuationState{Op: OpReplay}))
		require.True(t, HasContinuationState(scene.Dir))

		require.NoError(t, ClearContinuationState(scene.Dir))
		require.False(t, HasContinuationState(scene.Dir))
		require.NoError(t, ClearContinuationState(scene.Dir))
	})

	t.Run("fails on a corrupt continuation file", func(t *testing.T) {
		t.Parallel()
		scene := testhelpers.NewSceneNoChdir(t, nil)

		continueFile := filepath.Join(scene.Dir, ".git", ".regraft_continue")
		require.NoError(t, os.WriteFile(continueFile, []byte("{broken"), 0600))

		_, err := GetContinuationState(scene.Dir)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse continuation state")
	})
}
