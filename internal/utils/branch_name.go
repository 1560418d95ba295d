package utils

import (
	"regexp"
	"strings"
)

const (
	// MaxBranchNameByteLength is the maximum length for a branch name.
	// Git refs max out at 256 bytes, minus 22 for "refs/regraft-metadata/".
	MaxBranchNameByteLength = 234
)

var (
	// branchNameReplaceRegex matches characters that are not valid in branch names.
	// Valid characters: letters, numbers, -, _, /, .
	branchNameReplaceRegex = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)

	// branchNameTrailingRegex matches trailing slashes and dots that should be removed
	branchNameTrailingRegex = regexp.MustCompile(`[/.]*$`)

	hyphenRunRegex = regexp.MustCompile(`-+`)
)

// SanitizeBranchName sanitizes a candidate branch name by replacing invalid
// characters, collapsing hyphen runs and trimming to the ref length limit
func SanitizeBranchName(name string) string {
	name = branchNameTrailingRegex.ReplaceAllString(name, "")
	name = branchNameReplaceRegex.ReplaceAllString(name, "-")
	name = hyphenRunRegex.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if len(name) > MaxBranchNameByteLength {
		name = name[:MaxBranchNameByteLength]
		name = strings.TrimSuffix(name, "-")
	}

	return name
}
