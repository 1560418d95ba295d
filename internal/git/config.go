package git

import (
	"context"
	"fmt"
	"time"
)

// GetUserName returns the Git user's name from git config
func GetUserName(ctx context.Context) (string, error) {
	username, err := RunGitCommandWithContext(ctx, "config", "user.name")
	if err != nil {
		return "", fmt.Errorf("failed to get git user name: %w", err)
	}
	return username, nil
}

// GetCurrentDate returns the current date and time in yyyyMMddHHmmss format in UTC
func GetCurrentDate() string {
	now := time.Now().UTC()
	return now.Format("20060102150405")
}

// GetConfigValue returns a git config value, or empty string if unset
func GetConfigValue(ctx context.Context, key string) (string, error) {
	value, err := RunGitCommandWithContext(ctx, "config", "--get", key)
	if err != nil {
		if AsGitCommandError(err) != nil {
			return "", nil
		}
		return "", fmt.Errorf("failed to read git config %s: %w", key, err)
	}
	return value, nil
}
