package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If REGRAFT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.regraft/logs/regraft.log
func GetLogFilePath() string {
	if customPath := os.Getenv("REGRAFT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "regraft.log"
	}

	return filepath.Join(homeDir, ".regraft", "logs", "regraft.log")
}
