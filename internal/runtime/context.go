package runtime

import (
	"context"
	"fmt"

	"regraft.dev/regraft/internal/config"
	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/github"
	"regraft.dev/regraft/internal/tui"
)

// Context provides access to the engine and output for commands
type Context struct {
	Engine   engine.Engine
	Splog    *tui.Splog
	RepoRoot string
	GitHub   github.Client
}

// NewContext creates a context around an existing engine
func NewContext(eng engine.Engine, repoRoot string) *Context {
	return &Context{
		Engine:   eng,
		Splog:    newSplog(),
		RepoRoot: repoRoot,
	}
}

// newSplog builds the logger, with the rotating file log when possible
func newSplog() *tui.Splog {
	splog, err := tui.NewSplogWithLogFile(tui.GetLogFilePath())
	if err != nil {
		return tui.NewSplog()
	}
	return splog
}

// GetContext builds the full command context: it requires a git repository
// with regraft initialized, constructs the engine, and attaches a GitHub
// client when a token is available
func GetContext() (*Context, error) {
	if err := git.InitDefaultRepo(); err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get repo root: %w", err)
	}

	// Anchor all git subprocesses at the repo root so index-relative
	// paths stay valid when regraft runs from a subdirectory
	git.SetWorkingDir(repoRoot)

	if !config.IsInitialized(repoRoot) {
		return nil, fmt.Errorf("regraft not initialized. Run 'regraft init' first")
	}

	eng, err := engine.NewEngine(repoRoot)
	if err != nil {
		return nil, err
	}

	rc := NewContext(eng, repoRoot)

	// The GitHub client is best-effort; submit checks for nil
	if ghClient, err := github.NewRealClient(context.Background(), eng.Remote()); err == nil {
		rc.GitHub = ghClient
	}

	return rc, nil
}

// Close releases resources held by the context
func (c *Context) Close() error {
	if c.Splog != nil {
		return c.Splog.Close()
	}
	return nil
}
