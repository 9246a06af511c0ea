// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blendpack-cli/pkg/blinfo"
)

// ArchiveName builds the release artifact filename:
// {addon}_v{major}.{minor}.{patch}_{timestamp}.zip
func ArchiveName(addonID string, version blinfo.Version, at time.Time) string {
	return fmt.Sprintf("%s_v%s_%s.zip", addonID, version, at.Format(TimestampLayout))
}

// Archive writes the staging directory into a ZIP whose single top-level
// directory is the staging directory's base name. The archive is created
// exclusively: if a file with the same name already exists the call fails
// and the existing file is left untouched, so two runs within the same
// second can never silently replace each other's artifact.
func Archive(stagingDir, outDir string, version blinfo.Version, at time.Time) (archivePath string, err error) {
	absStaging, err := filepath.Abs(stagingDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve staging path: %w", err)
	}
	if info, statErr := os.Stat(absStaging); statErr != nil || !info.IsDir() {
		return "", fmt.Errorf("staging directory %s is not usable: %v", absStaging, statErr)
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	rootName := filepath.Base(absStaging)
	outPath := filepath.Join(absOut, ArchiveName(rootName, version, at))

	// O_EXCL enforces artifact immutability even under concurrent runs.
	zipFile, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("archive %s already exists; artifacts are immutable and are never overwritten", outPath)
		}
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			// Do not leave a partial artifact behind.
			_ = os.Remove(outPath)
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	err = filepath.WalkDir(absStaging, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, relErr := filepath.Rel(absStaging, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		if relPath == "." {
			return nil
		}

		// Forward slashes for ZIP portability.
		entryName := filepath.ToSlash(filepath.Join(rootName, relPath))

		if d.IsDir() {
			_, createErr := zipWriter.Create(entryName + "/")
			return createErr
		}

		fileInfo, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("failed to stat %s: %w", relPath, infoErr)
		}

		header, headerErr := zip.FileInfoHeader(fileInfo)
		if headerErr != nil {
			return fmt.Errorf("failed to build header for %s: %w", relPath, headerErr)
		}
		header.Name = entryName
		header.Method = zip.Deflate

		writer, writerErr := zipWriter.CreateHeader(header)
		if writerErr != nil {
			return fmt.Errorf("failed to create entry %s: %w", entryName, writerErr)
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", relPath, readErr)
		}
		if _, writeErr := writer.Write(data); writeErr != nil {
			return fmt.Errorf("failed to write entry %s: %w", entryName, writeErr)
		}
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed to archive addon: %w", err)
		return "", err
	}

	return outPath, nil
}
