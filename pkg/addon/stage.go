// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"blendpack-cli/pkg/manifest"
	"blendpack-cli/pkg/platform"
)

// StageResult describes what Stage copied into the staging directory.
type StageResult struct {
	// Dir is the absolute path of the staging directory.
	Dir string
	// Copied lists the relative paths that were copied.
	Copied []string
	// MissingDocs lists declared documentation files that were absent.
	MissingDocs []string
	// SkippedOptional lists optional files that were absent.
	SkippedOptional []string
}

// Stage creates a fresh staging directory named after the addon identifier
// inside srcDir and copies the manifest's file lists into it. A required
// file that is missing aborts staging; the partial staging directory is
// removed so no half-built tree is left behind.
func Stage(srcDir string, m *manifest.Manifest) (result *StageResult, err error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	stagingDir := filepath.Join(absSrc, m.Addon)

	// A previous run may have left the staging directory behind.
	if err := os.RemoveAll(stagingDir); err != nil {
		return nil, fmt.Errorf("failed to remove existing staging directory: %w", err)
	}
	if err := os.Mkdir(stagingDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.RemoveAll(stagingDir)
		}
	}()

	result = &StageResult{Dir: stagingDir}

	for _, rel := range m.Files.Required {
		copied, copyErr := stageFile(absSrc, stagingDir, rel)
		if copyErr != nil {
			return nil, copyErr
		}
		if !copied {
			return nil, fmt.Errorf("required file missing: %s", rel)
		}
		result.Copied = append(result.Copied, rel)
	}

	for _, rel := range m.Files.Docs {
		copied, copyErr := stageFile(absSrc, stagingDir, rel)
		if copyErr != nil {
			return nil, copyErr
		}
		if copied {
			result.Copied = append(result.Copied, rel)
		} else {
			result.MissingDocs = append(result.MissingDocs, rel)
		}
	}

	for _, rel := range m.Files.Optional {
		copied, copyErr := stageFile(absSrc, stagingDir, rel)
		if copyErr != nil {
			return nil, copyErr
		}
		if copied {
			result.Copied = append(result.Copied, rel)
		} else {
			result.SkippedOptional = append(result.SkippedOptional, rel)
		}
	}

	return result, nil
}

// Cleanup removes the staging directory.
func Cleanup(stagingDir string) error {
	if stagingDir == "" {
		return nil
	}
	if err := os.RemoveAll(stagingDir); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}
	return nil
}

// stageFile copies one declared file into the staging directory, creating
// parent directories as needed. Returns false when the source is absent.
func stageFile(srcDir, stagingDir, rel string) (bool, error) {
	if platform.IsJunkName(filepath.Base(rel)) {
		return false, fmt.Errorf("declared file %s is an OS artifact and cannot be packaged", rel)
	}

	srcPath := filepath.Join(srcDir, filepath.FromSlash(rel))
	info, err := os.Lstat(srcPath)
	switch {
	case err != nil && os.IsNotExist(err):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("cannot access %s: %w", rel, err)
	case info.IsDir():
		return false, fmt.Errorf("declared file %s is a directory", rel)
	case info.Mode()&os.ModeSymlink != 0:
		// Symlinks could point outside the addon and break on extraction.
		return false, fmt.Errorf("declared file %s is a symlink", rel)
	}

	dstPath := filepath.Join(stagingDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return false, fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	if err := copyFile(srcPath, dstPath, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to copy %s: %w", rel, err)
	}
	return true, nil
}

func copyFile(src, dst string, perm os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
