package git

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// metadataRefPrefix is the ref namespace recording how each landing
// branch was produced. Stored in refs so the history survives checkouts
// and is shareable via fetch like any other ref.
const metadataRefPrefix = "refs/regraft-metadata/"

// LandingMeta records the provenance of a landing branch
type LandingMeta struct {
	SourceBranch     *string `json:"sourceBranch,omitempty"`
	SourceRevision   *string `json:"sourceRevision,omitempty"`
	BaselineRevision *string `json:"baselineRevision,omitempty"`
	Strategy         *string `json:"strategy,omitempty"`
	BackupTag        *string `json:"backupTag,omitempty"`
	LandedAt         *string `json:"landedAt,omitempty"`
	PrInfo           *PrInfo `json:"prInfo,omitempty"`
}

// PrInfo represents PR information attached to a landing branch
type PrInfo struct {
	Number  *int    `json:"number,omitempty"`
	Base    *string `json:"base,omitempty"`
	URL     *string `json:"url,omitempty"`
	Title   *string `json:"title,omitempty"`
	Body    *string `json:"body,omitempty"`
	State   *string `json:"state,omitempty"`
	IsDraft *bool   `json:"isDraft,omitempty"`
}

// ReadMetadataRef reads metadata for a landing branch. A missing or
// unreadable ref yields empty metadata, never an error.
func ReadMetadataRef(branchName string) (*LandingMeta, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}

	refName := plumbing.ReferenceName(metadataRefPrefix + branchName)
	ref, err := repo.Reference(refName, false)
	if err != nil {
		return &LandingMeta{}, nil
	}

	goGitMu.Lock()
	obj, err := repo.Object(plumbing.AnyObject, ref.Hash())
	goGitMu.Unlock()
	if err != nil {
		return &LandingMeta{}, nil
	}

	blob, ok := obj.(*object.Blob)
	if !ok {
		return &LandingMeta{}, nil
	}

	reader, err := blob.Reader()
	if err != nil {
		return &LandingMeta{}, nil
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return &LandingMeta{}, nil
	}

	var meta LandingMeta
	if err := json.Unmarshal(content, &meta); err != nil {
		return &LandingMeta{}, nil
	}

	return &meta, nil
}

// WriteMetadataRef writes metadata for a landing branch into the ref
// namespace. The blob is created with git hash-object so it is owned by
// the object database and survives gc while the ref exists.
func WriteMetadataRef(branchName string, meta *LandingMeta) error {
	jsonData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	sha, err := RunGitCommandWithInput(string(jsonData), "hash-object", "-w", "--stdin")
	if err != nil {
		return fmt.Errorf("failed to create metadata blob: %w", err)
	}

	_, err = RunGitCommand("update-ref", metadataRefPrefix+branchName, sha)
	if err != nil {
		return fmt.Errorf("failed to write metadata ref: %w", err)
	}

	return nil
}

// GetMetadataRefList returns all landing branches with metadata, mapping
// branch name to the metadata blob SHA
func GetMetadataRefList() (map[string]string, error) {
	repo, err := GetDefaultRepo()
	if err != nil {
		return nil, err
	}

	refs, err := repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}

	result := make(map[string]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if strings.HasPrefix(name, metadataRefPrefix) {
			result[strings.TrimPrefix(name, metadataRefPrefix)] = ref.Hash().String()
		}
		return nil
	})

	return result, err
}

// DeleteMetadataRef deletes the metadata ref for a landing branch
func DeleteMetadataRef(branchName string) error {
	repo, err := GetDefaultRepo()
	if err != nil {
		return err
	}

	refName := plumbing.ReferenceName(metadataRefPrefix + branchName)
	return repo.Storer.RemoveReference(refName)
}
