// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"blendpack-cli/pkg/blinfo"
)

var testStamp = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestArchiveName(t *testing.T) {
	got := ArchiveName("procedural_lighting_system", blinfo.Version{1, 0, 0}, testStamp)
	want := "procedural_lighting_system_v1.0.0_20240615_103000.zip"
	if got != want {
		t.Errorf("ArchiveName() = %q, want %q", got, want)
	}
}

func TestArchive(t *testing.T) {
	t.Run("archive has single root named after addon", func(t *testing.T) {
		stagingDir, meta := stagedAddon(t)
		outDir := t.TempDir()

		zipPath, err := Archive(stagingDir, outDir, meta.Version, testStamp)
		if err != nil {
			t.Fatalf("Archive() failed: %v", err)
		}

		reader, err := zip.OpenReader(zipPath)
		if err != nil {
			t.Fatal(err)
		}
		defer reader.Close()

		roots := map[string]bool{}
		files := map[string]bool{}
		for _, f := range reader.File {
			name := strings.TrimSuffix(f.Name, "/")
			roots[strings.Split(name, "/")[0]] = true
			files[name] = true
		}

		if len(roots) != 1 || !roots["procedural_lighting_system"] {
			t.Errorf("archive roots = %v, want only the addon identifier", roots)
		}
		for _, required := range testManifest().Files.Required {
			if !files["procedural_lighting_system/"+required] {
				t.Errorf("archive missing required file %s", required)
			}
		}
	})

	t.Run("filename embeds version and timestamp", func(t *testing.T) {
		stagingDir, meta := stagedAddon(t)
		outDir := t.TempDir()

		zipPath, err := Archive(stagingDir, outDir, meta.Version, testStamp)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(zipPath) != "procedural_lighting_system_v1.0.0_20240615_103000.zip" {
			t.Errorf("archive name = %q", filepath.Base(zipPath))
		}
	})

	t.Run("existing archive is never overwritten", func(t *testing.T) {
		stagingDir, meta := stagedAddon(t)
		outDir := t.TempDir()

		first, err := Archive(stagingDir, outDir, meta.Version, testStamp)
		if err != nil {
			t.Fatal(err)
		}
		original, err := os.ReadFile(first)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := Archive(stagingDir, outDir, meta.Version, testStamp); err == nil {
			t.Fatal("Archive() overwrote an existing artifact")
		}

		after, err := os.ReadFile(first)
		if err != nil {
			t.Fatal(err)
		}
		if len(after) != len(original) {
			t.Error("existing artifact was modified by the failed run")
		}
	})

	t.Run("distinct timestamps produce distinct files", func(t *testing.T) {
		stagingDir, meta := stagedAddon(t)
		outDir := t.TempDir()

		first, err := Archive(stagingDir, outDir, meta.Version, testStamp)
		if err != nil {
			t.Fatal(err)
		}
		second, err := Archive(stagingDir, outDir, meta.Version, testStamp.Add(time.Second))
		if err != nil {
			t.Fatal(err)
		}
		if first == second {
			t.Error("two runs produced the same archive path")
		}
	})

	t.Run("output directory is created", func(t *testing.T) {
		stagingDir, meta := stagedAddon(t)
		outDir := filepath.Join(t.TempDir(), "dist", "release")

		if _, err := Archive(stagingDir, outDir, meta.Version, testStamp); err != nil {
			t.Fatalf("Archive() failed with nested output dir: %v", err)
		}
	})

	t.Run("missing staging directory fails", func(t *testing.T) {
		if _, err := Archive(filepath.Join(t.TempDir(), "gone"), t.TempDir(), blinfo.Version{1, 0, 0}, testStamp); err == nil {
			t.Fatal("Archive() succeeded without a staging directory")
		}
	})
}
