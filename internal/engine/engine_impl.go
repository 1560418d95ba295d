package engine

import (
	"fmt"
	"sync"

	"regraft.dev/regraft/internal/config"
	"regraft.dev/regraft/internal/git"
)

// engineImpl implements the Engine interface over a single repository
type engineImpl struct {
	repoRoot      string
	baseline      string
	remote        string
	landingPrefix string
	pickLimit     int
	fileLimit     int
	autoBackup    bool

	currentBranch string
	branches      []string
	mu            sync.RWMutex
}

// NewEngine creates a new engine instance for the repository at repoRoot
func NewEngine(repoRoot string) (Engine, error) {
	// Initialize git repository
	if err := git.InitDefaultRepo(); err != nil {
		return nil, fmt.Errorf("failed to initialize git repository: %w", err)
	}

	baseline, err := config.GetBaseline(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}
	remote, err := config.GetRemoteName(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get remote: %w", err)
	}
	landingPrefix, err := config.GetLandingPrefix(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get landing prefix: %w", err)
	}
	pickLimit, err := config.GetPickLimit(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get pick limit: %w", err)
	}
	fileLimit, err := config.GetFileLimit(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get file limit: %w", err)
	}
	autoBackup, err := config.GetAutoBackup(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get auto-backup setting: %w", err)
	}

	e := &engineImpl{
		repoRoot:      repoRoot,
		baseline:      baseline,
		remote:        remote,
		landingPrefix: landingPrefix,
		pickLimit:     pickLimit,
		fileLimit:     fileLimit,
		autoBackup:    autoBackup,
	}

	if err := e.rebuild(); err != nil {
		return nil, fmt.Errorf("failed to load repository state: %w", err)
	}

	return e, nil
}

// rebuild reloads branch state from Git
func (e *engineImpl) rebuild() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	branches, err := git.GetAllBranchNames()
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}
	e.branches = branches

	currentBranch, err := git.GetCurrentBranch()
	if err != nil {
		// Detached HEAD - that's okay
		currentBranch = ""
	}
	e.currentBranch = currentBranch

	return nil
}

// RepoRoot returns the repository root directory
func (e *engineImpl) RepoRoot() string {
	return e.repoRoot
}

// Baseline returns the configured baseline branch
func (e *engineImpl) Baseline() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.baseline
}

// Remote returns the configured remote name
func (e *engineImpl) Remote() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.remote
}

// CurrentBranch returns the current branch name, or empty for detached HEAD
func (e *engineImpl) CurrentBranch() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentBranch
}

// AllBranchNames returns all local branch names
func (e *engineImpl) AllBranchNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.branches
}

// BranchExists checks whether a local branch exists
func (e *engineImpl) BranchExists(branchName string) bool {
	e.mu.RLock()
	for _, name := range e.branches {
		if name == branchName {
			e.mu.RUnlock()
			return true
		}
	}
	e.mu.RUnlock()

	// State may be stale; fall through to git for branches created since
	return git.BranchExists(branchName)
}

// LandingBranchFor returns the landing branch name for a source branch
func (e *engineImpl) LandingBranchFor(sourceBranch string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.landingPrefix + sourceBranch
}

// HasSession checks whether a landing session is active
func (e *engineImpl) HasSession() bool {
	return config.HasSessionState(e.repoRoot)
}

// Session returns the active landing session
func (e *engineImpl) Session() (*config.SessionState, error) {
	return config.GetSessionState(e.repoRoot)
}

// LandingBranches returns every landing branch with provenance metadata
func (e *engineImpl) LandingBranches() (map[string]*git.LandingMeta, error) {
	refs, err := git.GetMetadataRefList()
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata refs: %w", err)
	}

	result := make(map[string]*git.LandingMeta, len(refs))
	for branchName := range refs {
		meta, err := git.ReadMetadataRef(branchName)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata for %s: %w", branchName, err)
		}
		result[branchName] = meta
	}
	return result, nil
}
