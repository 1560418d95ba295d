package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// UnmergedFile describes one path with unresolved merge stages
type UnmergedFile struct {
	Path      string
	HasBase   bool // stage 1: common ancestor version exists
	HasOurs   bool // stage 2: our side has a version
	HasTheirs bool // stage 3: their side has a version
}

// AddedByBoth reports a file created independently on both sides
func (f UnmergedFile) AddedByBoth() bool {
	return !f.HasBase && f.HasOurs && f.HasTheirs
}

// DeletedOnOneSide reports a modify/delete conflict
func (f UnmergedFile) DeletedOnOneSide() bool {
	return f.HasBase && (!f.HasOurs || !f.HasTheirs)
}

// UnmergedFiles returns the paths currently blocked on conflicts, sorted.
// Parses `git ls-files -u` lines of the form:
//
//	100644 a5c19667710254f835085b99726e523457150e03 1	docs/setup.md
//	100644 1b2c3d4e5f60718293a4b5c6d7e8f901a2b3c4d5 2	docs/setup.md
func UnmergedFiles(ctx context.Context) ([]UnmergedFile, error) {
	lines, err := RunGitCommandLinesWithContext(ctx, "ls-files", "-u")
	if err != nil {
		return nil, fmt.Errorf("failed to list unmerged files: %w", err)
	}

	byPath := make(map[string]*UnmergedFile)
	for _, line := range lines {
		if line == "" {
			continue
		}

		// Path follows the first tab; stage is the third whitespace field
		tabIdx := strings.IndexByte(line, '\t')
		if tabIdx < 0 {
			return nil, fmt.Errorf("unexpected ls-files -u line: %q", line)
		}
		path := line[tabIdx+1:]
		fields := strings.Fields(line[:tabIdx])
		if len(fields) < 3 {
			return nil, fmt.Errorf("unexpected ls-files -u line: %q", line)
		}

		entry, ok := byPath[path]
		if !ok {
			entry = &UnmergedFile{Path: path}
			byPath[path] = entry
		}

		switch fields[2] {
		case "1":
			entry.HasBase = true
		case "2":
			entry.HasOurs = true
		case "3":
			entry.HasTheirs = true
		default:
			return nil, fmt.Errorf("unexpected merge stage in line: %q", line)
		}
	}

	files := make([]UnmergedFile, 0, len(byPath))
	for _, entry := range byPath {
		files = append(files, *entry)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, nil
}

// UnmergedPaths returns just the conflicted paths, sorted
func UnmergedPaths(ctx context.Context) ([]string, error) {
	files, err := UnmergedFiles(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	return paths, nil
}

// ConflictHunk is one marker-delimited conflict region in a worktree file
type ConflictHunk struct {
	StartLine   int // 1-indexed line of the <<<<<<< marker
	OursLabel   string
	TheirsLabel string
	Ours        []string
	Base        []string // populated only under merge.conflictStyle=diff3
	Theirs      []string
	HasBase     bool
}

// conflict marker prefixes at the default marker size
const (
	markerOurs   = "<<<<<<<"
	markerBase   = "|||||||"
	markerSplit  = "======="
	markerTheirs = ">>>>>>>"
)

// ReadConflictHunks scans a worktree file for conflict markers and returns
// the embedded hunks. Handles both the default two-way markers and the
// diff3 style with a common-ancestor section:
//
//	<<<<<<< HEAD
//	our lines
//	||||||| merged common ancestors
//	base lines
//	=======
//	their lines
//	>>>>>>> feature
func ReadConflictHunks(path string) ([]ConflictHunk, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	const (
		stateNormal = iota
		stateOurs
		stateBase
		stateTheirs
	)

	var hunks []ConflictHunk
	var current *ConflictHunk
	state := stateNormal

	for i, line := range strings.Split(string(content), "\n") {
		switch {
		case state == stateNormal && isMarker(line, markerOurs):
			current = &ConflictHunk{
				StartLine: i + 1,
				OursLabel: markerLabel(line, markerOurs),
			}
			state = stateOurs

		case state == stateOurs && isMarker(line, markerBase):
			current.HasBase = true
			state = stateBase

		case (state == stateOurs || state == stateBase) && line == markerSplit:
			state = stateTheirs

		case state == stateTheirs && isMarker(line, markerTheirs):
			current.TheirsLabel = markerLabel(line, markerTheirs)
			hunks = append(hunks, *current)
			current = nil
			state = stateNormal

		case state == stateOurs:
			current.Ours = append(current.Ours, line)
		case state == stateBase:
			current.Base = append(current.Base, line)
		case state == stateTheirs:
			current.Theirs = append(current.Theirs, line)
		}
	}

	if state != stateNormal {
		return nil, fmt.Errorf("unterminated conflict marker in %s", path)
	}

	return hunks, nil
}

// HasConflictMarkers reports whether a file still contains an unresolved
// conflict region
func HasConflictMarkers(path string) (bool, error) {
	hunks, err := ReadConflictHunks(path)
	if err != nil {
		return false, err
	}
	return len(hunks) > 0, nil
}

// ResolveMode selects which side of each conflict hunk survives
type ResolveMode int

const (
	// ResolveOurs keeps the current branch's side of every hunk
	ResolveOurs ResolveMode = iota
	// ResolveTheirs keeps the incoming side of every hunk
	ResolveTheirs
	// ResolveUnion keeps both sides, ours first
	ResolveUnion
)

// ResolveFile rewrites every conflict hunk in a worktree file according to
// mode. The write is atomic: a temp file next to the target is renamed
// over it, preserving the original permissions.
func ResolveFile(path string, mode ResolveMode) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	resolved, count, err := resolveContent(string(content), mode)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if count == 0 {
		return fmt.Errorf("no conflict markers in %s", path)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".regraft-resolve-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(resolved); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write resolved content: %w", err)
	}
	if err := tmp.Chmod(info.Mode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// resolveContent applies mode to every conflict hunk and returns the new
// content plus the number of hunks rewritten
func resolveContent(content string, mode ResolveMode) (string, int, error) {
	const (
		stateNormal = iota
		stateOurs
		stateBase
		stateTheirs
	)

	var out []string
	var ours, theirs []string
	state := stateNormal
	count := 0

	for _, line := range strings.Split(content, "\n") {
		switch {
		case state == stateNormal && isMarker(line, markerOurs):
			ours, theirs = nil, nil
			state = stateOurs

		case state == stateOurs && isMarker(line, markerBase):
			state = stateBase

		case (state == stateOurs || state == stateBase) && line == markerSplit:
			state = stateTheirs

		case state == stateTheirs && isMarker(line, markerTheirs):
			switch mode {
			case ResolveOurs:
				out = append(out, ours...)
			case ResolveTheirs:
				out = append(out, theirs...)
			case ResolveUnion:
				out = append(out, ours...)
				out = append(out, theirs...)
			}
			count++
			state = stateNormal

		case state == stateOurs:
			ours = append(ours, line)
		case state == stateBase:
			// Base section never survives resolution
		case state == stateTheirs:
			theirs = append(theirs, line)

		default:
			out = append(out, line)
		}
	}

	if state != stateNormal {
		return "", 0, fmt.Errorf("unterminated conflict marker")
	}

	return strings.Join(out, "\n"), count, nil
}

// isMarker matches a conflict marker line: the bare marker or the marker
// followed by a space and label
func isMarker(line, marker string) bool {
	return line == marker || strings.HasPrefix(line, marker+" ")
}

// markerLabel extracts the label after a conflict marker, if any
func markerLabel(line, marker string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, marker))
}
