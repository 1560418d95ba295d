package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Render(branchName + " (current)")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(branchName)
}

// ColorSHA colors an abbreviated commit SHA
func ColorSHA(sha string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(sha)
}

// ColorStrategy colors a landing strategy name
func ColorStrategy(name string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Bold(true).
		Render(name)
}

// ColorTag colors a backup tag name
func ColorTag(name string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(name)
}

// ColorOK colors success text green
func ColorOK(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorConflict colors conflict markers and conflicting paths red
func ColorConflict(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Bold(true).
		Render(text)
}

// ColorPRNumber colors a PR number (yellow)
func ColorPRNumber(prNumber int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(fmt.Sprintf("PR #%d", prNumber))
}

// ColorOursLabel styles the baseline side label of a conflict hunk
func ColorOursLabel(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorTheirsLabel styles the source side label of a conflict hunk
func ColorTheirsLabel(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}
