// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStage(t *testing.T) {
	t.Run("stages required docs and reports absences", func(t *testing.T) {
		dir := newAddonDir(t)
		m := testManifest()

		result, err := Stage(dir, m)
		if err != nil {
			t.Fatalf("Stage() failed: %v", err)
		}

		if result.Dir != filepath.Join(dir, m.Addon) {
			t.Errorf("staging dir = %q, want inside source dir named after addon", result.Dir)
		}
		for _, rel := range m.Files.Required {
			if _, err := os.Stat(filepath.Join(result.Dir, rel)); err != nil {
				t.Errorf("required file %s not staged: %v", rel, err)
			}
		}

		// README.md exists, sample_scene.py does not.
		if len(result.MissingDocs) != 1 || result.MissingDocs[0] != "sample_scene.py" {
			t.Errorf("MissingDocs = %v, want [sample_scene.py]", result.MissingDocs)
		}
		// Neither optional file exists.
		if len(result.SkippedOptional) != 2 {
			t.Errorf("SkippedOptional = %v, want both optional files", result.SkippedOptional)
		}
	})

	t.Run("missing required file aborts and removes staging", func(t *testing.T) {
		dir := newAddonDir(t)
		if err := os.Remove(filepath.Join(dir, "operators.py")); err != nil {
			t.Fatal(err)
		}

		_, err := Stage(dir, testManifest())
		if err == nil {
			t.Fatal("Stage() succeeded with a missing required file")
		}
		if !strings.Contains(err.Error(), "operators.py") {
			t.Errorf("error %q should name the missing file", err)
		}
		if _, statErr := os.Stat(filepath.Join(dir, "procedural_lighting_system")); !os.IsNotExist(statErr) {
			t.Error("partial staging directory left behind after failure")
		}
	})

	t.Run("stale staging directory is replaced", func(t *testing.T) {
		dir := newAddonDir(t)
		staleDir := filepath.Join(dir, "procedural_lighting_system")
		if err := os.Mkdir(staleDir, 0o755); err != nil {
			t.Fatal(err)
		}
		stale := filepath.Join(staleDir, "leftover.py")
		if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		result, err := Stage(dir, testManifest())
		if err != nil {
			t.Fatalf("Stage() failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(result.Dir, "leftover.py")); !os.IsNotExist(err) {
			t.Error("stale file survived restaging")
		}
	})

	t.Run("declared junk file rejected", func(t *testing.T) {
		dir := newAddonDir(t)
		m := testManifest()
		m.Files.Required = append(m.Files.Required, ".DS_Store")

		if _, err := Stage(dir, m); err == nil {
			t.Fatal("Stage() accepted an OS artifact in the manifest")
		}
	})

	t.Run("declared directory rejected", func(t *testing.T) {
		dir := newAddonDir(t)
		if err := os.Mkdir(filepath.Join(dir, "textures"), 0o755); err != nil {
			t.Fatal(err)
		}
		m := testManifest()
		m.Files.Required = append(m.Files.Required, "textures")

		if _, err := Stage(dir, m); err == nil {
			t.Fatal("Stage() accepted a directory as a declared file")
		}
	})

	t.Run("nested relative paths staged with parents", func(t *testing.T) {
		dir := newAddonDir(t)
		if err := os.MkdirAll(filepath.Join(dir, "icons"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "icons", "bulb.svg"), []byte("<svg/>"), 0o644); err != nil {
			t.Fatal(err)
		}
		m := testManifest()
		m.Files.Required = append(m.Files.Required, "icons/bulb.svg")

		result, err := Stage(dir, m)
		if err != nil {
			t.Fatalf("Stage() failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(result.Dir, "icons", "bulb.svg")); err != nil {
			t.Errorf("nested file not staged: %v", err)
		}
	})
}

func TestCleanup(t *testing.T) {
	dir := newAddonDir(t)
	result, err := Stage(dir, testManifest())
	if err != nil {
		t.Fatal(err)
	}

	if err := Cleanup(result.Dir); err != nil {
		t.Fatalf("Cleanup() failed: %v", err)
	}
	if _, err := os.Stat(result.Dir); !os.IsNotExist(err) {
		t.Error("staging directory still exists after Cleanup")
	}

	// Cleaning up twice is fine.
	if err := Cleanup(result.Dir); err != nil {
		t.Errorf("second Cleanup() failed: %v", err)
	}
}
