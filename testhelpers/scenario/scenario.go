// Package scenario provides a high-level test scenario that combines a
// Scene, an Engine, and a runtime Context to provide a terse API for
// integration tests.
package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/runtime"
	"regraft.dev/regraft/testhelpers"
)

// Scenario bundles a Scene with a ready engine and command context
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Engine  engine.Engine
	Context *runtime.Context
	GitHub  *testhelpers.FakeGitHubClient
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: not safe for parallel tests; NewScene changes the process
// directory and the git package's cached state.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	scene := testhelpers.NewScene(t, setup)
	eng, err := engine.NewEngine(scene.Dir)
	require.NoError(t, err)

	return &Scenario{
		T:       t,
		Scene:   scene,
		Engine:  eng,
		Context: runtime.NewContext(eng, scene.Dir),
	}
}

// WithGitHub attaches an in-memory GitHub client to the context
func (s *Scenario) WithGitHub(owner, repo string) *Scenario {
	s.GitHub = testhelpers.NewFakeGitHubClient(owner, repo)
	s.Context.GitHub = s.GitHub
	return s
}

// WithRemote adds a bare repository as a remote
func (s *Scenario) WithRemote(name string) *Scenario {
	s.T.Helper()
	_, err := s.Scene.Repo.AddBareRemote(name)
	require.NoError(s.T, err)
	return s
}

// Checkout checks out a branch and rebuilds the engine
func (s *Scenario) Checkout(branch string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CheckoutBranch(branch))
	return s.Rebuild()
}

// Rebuild recreates the engine so it sees the repository's current state.
// The engine snapshots branches at construction time, so tests that move
// HEAD outside an engine operation need this.
func (s *Scenario) Rebuild() *Scenario {
	s.T.Helper()
	git.ResetDefaultRepo()
	require.NoError(s.T, git.InitDefaultRepo())
	eng, err := engine.NewEngine(s.Scene.Dir)
	require.NoError(s.T, err)
	s.Engine = eng
	s.Context.Engine = eng
	return s
}

// CommitChange writes a file derived from prefix and commits it on the
// current branch
func (s *Scenario) CommitChange(textValue, prefix string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.Repo.CreateChangeAndCommit(textValue, prefix))
	return s
}

// ExpectBranch asserts which branch is checked out
func (s *Scenario) ExpectBranch(expected string) *Scenario {
	s.T.Helper()
	actual, err := s.Scene.Repo.CurrentBranchName()
	require.NoError(s.T, err)
	require.Equal(s.T, expected, actual)
	return s
}
