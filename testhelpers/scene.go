package testhelpers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"regraft.dev/regraft/internal/git"
)

// Scene is a test scene with a temporary directory holding an initialized
// Git repository with regraft configured
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup is a function type for setting up a scene
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary Git repository and
// changes into it. Cleanup is registered via t.Cleanup(); set DEBUG to
// keep the directory around after a failing test.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "regraft-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	// Resolve symlinks so paths compare equal with git's reported root
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:    tmpDir,
		Repo:   repo,
		oldDir: oldDir,
	}

	if err := os.Chdir(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to change directory: %v", err)
	}

	// The git package caches a repository handle and a subprocess working
	// dir; point both at this scene
	git.ResetDefaultRepo()
	git.SetWorkingDir(tmpDir)

	if err := scene.writeDefaultConfig(); err != nil {
		os.Chdir(oldDir)
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to write config: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			os.Chdir(oldDir)
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	if err := git.InitDefaultRepo(); err != nil {
		os.Chdir(oldDir)
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to open scene repo: %v", err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
		git.ResetDefaultRepo()
		git.SetWorkingDir("")
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	return scene
}

// NewSceneNoChdir creates a scene without changing the process directory
// and without touching the git package's cached state. Tests that only
// use Scene.Repo and explicit-path APIs can run in parallel with it.
func NewSceneNoChdir(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "regraft-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	if resolved, err := filepath.EvalSymlinks(tmpDir); err == nil {
		tmpDir = resolved
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{Dir: tmpDir, Repo: repo}

	if err := scene.writeDefaultConfig(); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to write config: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	return scene
}

// writeDefaultConfig marks the scene repository as regraft-initialized
// with main as the baseline
func (s *Scene) writeDefaultConfig() error {
	configPath := filepath.Join(s.Dir, ".git", ".regraft_config")
	config := `{
  "baseline": "main",
  "remote": "origin"
}
`
	if err := os.WriteFile(configPath, []byte(config), 0600); err != nil {
		return err
	}

	// Keep prompts out of tests
	os.Setenv("REGRAFT_TEST_NO_INTERACTIVE", "1")
	return nil
}

// BasicSceneSetup creates a basic scene with a single commit on main
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// FeatureSceneSetup builds the everyday landing shape: main with a root
// commit and a feature branch carrying two commits of its own
func FeatureSceneSetup(scene *Scene) error {
	if err := scene.Repo.CreateChangeAndCommit("base", "base"); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("feature"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("feature work 1", "f1"); err != nil {
		return err
	}
	if err := scene.Repo.CreateChangeAndCommit("feature work 2", "f2"); err != nil {
		return err
	}
	return scene.Repo.CheckoutBranch("main")
}

// DivergedSceneSetup extends FeatureSceneSetup with an extra commit on
// main, so the feature branch and the baseline have both moved since the
// merge base
func DivergedSceneSetup(scene *Scene) error {
	if err := FeatureSceneSetup(scene); err != nil {
		return err
	}
	return scene.Repo.CreateChangeAndCommit("main moved", "m1")
}

// ConflictSceneSetup builds a guaranteed conflict: main and the feature
// branch change the same line of the same file differently
func ConflictSceneSetup(scene *Scene) error {
	if err := scene.Repo.WriteFileAndCommit("shared.txt", "original\n", "add shared file"); err != nil {
		return err
	}
	if err := scene.Repo.CreateAndCheckoutBranch("feature"); err != nil {
		return err
	}
	if err := scene.Repo.WriteFileAndCommit("shared.txt", "feature version\n", "feature edit"); err != nil {
		return err
	}
	if err := scene.Repo.CheckoutBranch("main"); err != nil {
		return err
	}
	return scene.Repo.WriteFileAndCommit("shared.txt", "main version\n", "main edit")
}

// CommitOnBranch switches to a branch, commits a change there, and
// returns to the branch that was checked out before
func (s *Scene) CommitOnBranch(branch, textValue, prefix string) error {
	current, err := s.Repo.CurrentBranchName()
	if err != nil {
		return err
	}
	if err := s.Repo.CheckoutBranch(branch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	if err := s.Repo.CreateChangeAndCommit(textValue, prefix); err != nil {
		return err
	}
	return s.Repo.CheckoutBranch(current)
}
