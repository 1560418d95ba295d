package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// resolveEditor returns the editor command to launch, following git's own
// lookup order
func resolveEditor() string {
	editor := os.Getenv("GIT_EDITOR")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		output, err := exec.Command("git", "config", "--get", "core.editor").Output()
		if err == nil {
			editor = strings.TrimSpace(string(output))
		}
	}
	if editor == "" {
		editor = "vi"
	}
	return editor
}

// runEditor launches the editor on a file with the terminal attached
func runEditor(path string) error {
	cmd := exec.Command("sh", "-c", fmt.Sprintf("%s %s", resolveEditor(), path))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// OpenEditor opens the user's preferred editor with the given initial content.
// It returns the edited content or an error.
func OpenEditor(initialContent, filenamePattern string) (string, error) {
	tmpFile, err := os.CreateTemp("", filenamePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.WriteString(initialContent); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(tmpFile.Name()); err != nil {
		return "", err
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}

	return string(content), nil
}

// EditFileInPlace opens the user's preferred editor directly on an existing
// file. Used to hand-resolve a conflicted file.
func EditFileInPlace(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot edit %s: %w", path, err)
	}
	return runEditor(path)
}
