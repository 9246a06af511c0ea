// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"fmt"
	"os"
	"path/filepath"

	"blendpack-cli/pkg/blinfo"
	"blendpack-cli/pkg/manifest"
	"blendpack-cli/pkg/platform"
)

// Validate checks a staged addon directory against the release contract:
// directory name is a valid identifier, the entry file carries parseable
// bl_info metadata, and the tree contains no symlinks, junk files, or
// Windows-incompatible names. Returns an error only when the directory
// cannot be walked; domain problems land in the result's issue list.
func Validate(stagingDir string) (*ValidationResult, error) {
	absPath, err := filepath.Abs(stagingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve staging path: %w", err)
	}

	result := &ValidationResult{
		Valid:      true,
		StagingDir: absPath,
		Issues:     []ValidationIssue{},
	}

	info, err := os.Stat(absPath)
	switch {
	case err != nil && os.IsNotExist(err):
		result.AddIssue("structure", "staging directory does not exist", "")
		return result, nil
	case err != nil:
		return nil, fmt.Errorf("failed to stat staging directory: %w", err)
	case !info.IsDir():
		result.AddIssue("structure", "staging path is not a directory", "")
		return result, nil
	}

	id := filepath.Base(absPath)
	if !manifest.IsValidAddonID(id) {
		result.AddIssue("naming", fmt.Sprintf("directory name %q is not a valid addon identifier", id), "")
	} else {
		result.AddonID = id
	}

	validateEntryFile(absPath, result)

	walkErr := filepath.WalkDir(absPath, func(path string, d os.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if path == absPath {
			return nil
		}

		relPath, relErr := filepath.Rel(absPath, path)
		if relErr != nil {
			relPath = d.Name()
		}

		if d.Type()&os.ModeSymlink != 0 {
			result.AddIssue("security", "symlinks are not allowed in release artifacts", relPath)
			return nil
		}
		if platform.IsJunkName(d.Name()) {
			result.AddIssue("junk", fmt.Sprintf("OS artifact file %s must not be packaged", d.Name()), relPath)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if platform.IsWindowsReservedName(d.Name()) {
			result.AddIssue("compatibility", fmt.Sprintf("filename %q is reserved on Windows", d.Name()), relPath)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk staging directory: %w", walkErr)
	}

	return result, nil
}

// ValidateSource checks an addon source directory against its manifest
// without staging anything: every required file must exist and be a
// regular file, and the entry file must carry complete bl_info. Declared
// documentation files that are absent are reported as warnings by the
// caller, not as issues here.
func ValidateSource(srcDir string, m *manifest.Manifest) (*ValidationResult, error) {
	absPath, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	result := &ValidationResult{
		Valid:      true,
		StagingDir: absPath,
		AddonID:    m.Addon,
		Issues:     []ValidationIssue{},
	}

	entryUsable := false
	for _, rel := range m.Files.Required {
		info, statErr := os.Lstat(filepath.Join(absPath, filepath.FromSlash(rel)))
		switch {
		case statErr != nil && os.IsNotExist(statErr):
			result.AddIssue("structure", "required file is missing", rel)
		case statErr != nil:
			return nil, fmt.Errorf("failed to stat %s: %w", rel, statErr)
		case !info.Mode().IsRegular():
			result.AddIssue("structure", "required entry is not a regular file", rel)
		default:
			if rel == blinfo.EntryFile {
				entryUsable = true
			}
		}
	}

	if entryUsable {
		validateEntryFile(absPath, result)
	}

	return result, nil
}

// validateEntryFile checks __init__.py exists and carries complete bl_info.
func validateEntryFile(dir string, result *ValidationResult) {
	entryPath := filepath.Join(dir, blinfo.EntryFile)
	if _, err := os.Stat(entryPath); err != nil {
		result.AddIssue("structure", fmt.Sprintf("missing required entry file %s", blinfo.EntryFile), "")
		return
	}

	meta, err := blinfo.ParseFile(entryPath)
	if err != nil {
		result.AddIssue("metadata", err.Error(), blinfo.EntryFile)
		return
	}

	for _, problem := range meta.Validate() {
		result.AddIssue("metadata", problem, blinfo.EntryFile)
	}
}
