package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Operation names recorded in ContinuationState.Op. Each maps to one git
// resume command: replay → rebase --continue, pick → cherry-pick
// --continue, merge → merge --continue, apply → am --continue.
const (
	OpReplay = "replay"
	OpPick   = "pick"
	OpMerge  = "merge"
	OpApply  = "apply"
)

// ContinuationState represents a landing operation that stopped on a
// conflict and is waiting for `regraft continue`
type ContinuationState struct {
	// Op is the interrupted operation: one of the Op* constants
	Op string `json:"op"`

	LandingBranch string `json:"landingBranch"`
	SourceBranch  string `json:"sourceBranch"`

	// CurrentSHA is the source commit being applied when the conflict hit
	CurrentSHA string `json:"currentSha,omitempty"`

	// RemainingSHAs are source commits still queued after CurrentSHA,
	// oldest first
	RemainingSHAs []string `json:"remainingShas,omitempty"`

	// Annotate carries the -x flag across the interruption
	Annotate bool `json:"annotate,omitempty"`

	// CheckedOutBranch is restored once the operation finishes
	CheckedOutBranch string `json:"checkedOutBranch,omitempty"`
}

func continuationPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".regraft_continue")
}

// GetContinuationState reads the continuation state from disk
func GetContinuationState(repoRoot string) (*ContinuationState, error) {
	data, err := os.ReadFile(continuationPath(repoRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no continuation state found")
		}
		return nil, fmt.Errorf("failed to read continuation state: %w", err)
	}

	var state ContinuationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse continuation state: %w", err)
	}
	return &state, nil
}

// HasContinuationState checks whether an interrupted operation is waiting
func HasContinuationState(repoRoot string) bool {
	_, err := os.Stat(continuationPath(repoRoot))
	return err == nil
}

// PersistContinuationState writes the continuation state to disk
func PersistContinuationState(repoRoot string, state *ContinuationState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal continuation state: %w", err)
	}
	return os.WriteFile(continuationPath(repoRoot), data, 0600)
}

// ClearContinuationState removes the continuation state file
func ClearContinuationState(repoRoot string) error {
	err := os.Remove(continuationPath(repoRoot))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear continuation state: %w", err)
	}
	return nil
}
