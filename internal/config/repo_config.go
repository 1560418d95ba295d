package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults applied when a field is absent from the config file
const (
	DefaultBaseline      = "develop"
	DefaultRemote        = "origin"
	DefaultLandingPrefix = "landing/"

	// DefaultPickLimit is the largest unique-commit count the planner
	// still lands commit by commit; above it a full replay is cheaper
	DefaultPickLimit = 5

	// DefaultFileLimit is the largest touched-file count for which the
	// planner suggests file-scope landing as an alternative
	DefaultFileLimit = 4
)

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Baseline      *string `json:"baseline,omitempty"`
	Remote        *string `json:"remote,omitempty"`
	LandingPrefix *string `json:"landingPrefix,omitempty"`
	PickLimit     *int    `json:"pickLimit,omitempty"`
	FileLimit     *int    `json:"fileLimit,omitempty"`
	AutoBackup    *bool   `json:"autoBackup,omitempty"`
}

func repoConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".regraft_config")
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(repoConfigPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SaveRepoConfig writes the repository configuration
func SaveRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(repoConfigPath(repoRoot), configJSON, 0600)
}

// IsInitialized checks if regraft has been initialized in this repository
func IsInitialized(repoRoot string) bool {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return false
	}
	return config.Baseline != nil && *config.Baseline != ""
}

// GetBaseline returns the configured baseline branch, or "develop" as default
func GetBaseline(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Baseline != nil && *config.Baseline != "" {
		return *config.Baseline, nil
	}

	return DefaultBaseline, nil
}

// SetBaseline updates the baseline branch in the config
func SetBaseline(repoRoot string, baselineName string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Baseline = &baselineName
	return SaveRepoConfig(repoRoot, config)
}

// GetRemoteName returns the configured remote name, or "origin" as default
func GetRemoteName(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Remote != nil && *config.Remote != "" {
		return *config.Remote, nil
	}

	return DefaultRemote, nil
}

// SetRemote updates the remote name in the config
func SetRemoteName(repoRoot string, remoteName string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Remote = &remoteName
	return SaveRepoConfig(repoRoot, config)
}

// GetLandingPrefix returns the prefix for landing branch names. Always
// ends with a slash so "landing" and "landing/" configure the same thing.
func GetLandingPrefix(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	prefix := DefaultLandingPrefix
	if config.LandingPrefix != nil && *config.LandingPrefix != "" {
		prefix = *config.LandingPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix, nil
}

// GetPickLimit returns the commit count threshold for the pick strategy
func GetPickLimit(repoRoot string) (int, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return 0, err
	}

	if config.PickLimit != nil && *config.PickLimit > 0 {
		return *config.PickLimit, nil
	}

	return DefaultPickLimit, nil
}

// GetFileLimit returns the touched-file threshold for suggesting
// file-scope landing
func GetFileLimit(repoRoot string) (int, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return 0, err
	}

	if config.FileLimit != nil && *config.FileLimit > 0 {
		return *config.FileLimit, nil
	}

	return DefaultFileLimit, nil
}

// GetAutoBackup returns whether landing operations tag the involved
// branches before touching them. Defaults to true.
func GetAutoBackup(repoRoot string) (bool, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return false, err
	}

	if config.AutoBackup != nil {
		return *config.AutoBackup, nil
	}

	return true, nil
}

// SetAutoBackup updates the auto-backup flag in the config
func SetAutoBackup(repoRoot string, enabled bool) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.AutoBackup = &enabled
	return SaveRepoConfig(repoRoot, config)
}
