package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionState tracks a landing session from plan to completion. It lives
// in .git so a half-finished landing survives process restarts and is
// visible to `regraft status` and `regraft abort`.
type SessionState struct {
	SourceBranch  string `json:"sourceBranch"`
	Baseline      string `json:"baseline"`
	LandingBranch string `json:"landingBranch"`
	MergeBase     string `json:"mergeBase"`

	// Strategy is the landing strategy in flight: "replay", "pick",
	// "merge" or "files"
	Strategy string `json:"strategy"`

	// PlannedSHAs are the source commits the plan selected, oldest first
	PlannedSHAs []string `json:"plannedShas,omitempty"`

	// LandedSHAs are planned commits already applied to the landing branch
	LandedSHAs []string `json:"landedShas,omitempty"`

	// BackupTag names the safety tag taken before the session started
	BackupTag string `json:"backupTag,omitempty"`

	// BaselineRevision is the baseline tip the session started from
	BaselineRevision string `json:"baselineRevision,omitempty"`

	StartedAt time.Time `json:"startedAt"`
}

func sessionPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".regraft_session")
}

// GetSessionState reads the active landing session from disk
func GetSessionState(repoRoot string) (*SessionState, error) {
	data, err := os.ReadFile(sessionPath(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no landing session found")
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}
	return &state, nil
}

// HasSessionState checks whether a landing session is active
func HasSessionState(repoRoot string) bool {
	_, err := os.Stat(sessionPath(repoRoot))
	return err == nil
}

// PersistSessionState writes the landing session to disk
func PersistSessionState(repoRoot string, state *SessionState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	return os.WriteFile(sessionPath(repoRoot), data, 0600)
}

// ClearSessionState removes the landing session file
func ClearSessionState(repoRoot string) error {
	err := os.Remove(sessionPath(repoRoot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}
