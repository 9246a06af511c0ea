// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("defaults when no config file", func(t *testing.T) {
		SetDirOverride(t.TempDir())
		t.Cleanup(Reset)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.OutputDir != "." {
			t.Errorf("OutputDir = %q, want \".\"", cfg.OutputDir)
		}
		if cfg.UI.ColorScheme != ColorSchemeAuto {
			t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
		}
		if cfg.KeepStaging {
			t.Error("KeepStaging should default to false")
		}
	})

	t.Run("config file values override defaults", func(t *testing.T) {
		dir := t.TempDir()
		content := `
output_dir: "dist"
keep_staging: true
ui: verbose: true
`
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		SetDirOverride(dir)
		t.Cleanup(Reset)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.OutputDir != "dist" || !cfg.KeepStaging || !cfg.UI.Verbose {
			t.Errorf("config not applied: %+v", cfg)
		}
		// Untouched fields keep schema defaults.
		if cfg.UI.ColorScheme != ColorSchemeAuto {
			t.Errorf("ColorScheme = %q, want auto", cfg.UI.ColorScheme)
		}
	})

	t.Run("invalid color scheme rejected by schema", func(t *testing.T) {
		dir := t.TempDir()
		content := `ui: color_scheme: "neon"`
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		SetDirOverride(dir)
		t.Cleanup(Reset)

		if _, err := Load(); err == nil {
			t.Fatal("Load() accepted an invalid color scheme")
		}
	})

	t.Run("invalid CUE syntax surfaces as actionable error", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`output_dir: "unterminated`), 0o644); err != nil {
			t.Fatal(err)
		}
		SetDirOverride(dir)
		t.Cleanup(Reset)

		if _, err := Load(); err == nil {
			t.Fatal("Load() accepted invalid CUE")
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		SetFileOverride(filepath.Join(t.TempDir(), "nope.cue"))
		t.Cleanup(Reset)

		if _, err := Load(); err == nil {
			t.Fatal("Load() succeeded with a missing explicit config file")
		}
	})

	t.Run("environment variable override", func(t *testing.T) {
		SetDirOverride(t.TempDir())
		t.Cleanup(Reset)
		t.Setenv("BLENDPACK_OUTPUT_DIR", "/tmp/releases")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.OutputDir != "/tmp/releases" {
			t.Errorf("OutputDir = %q, want env override", cfg.OutputDir)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		if err := DefaultConfig().Validate(); err != nil {
			t.Errorf("DefaultConfig().Validate() = %v", err)
		}
	})

	t.Run("blank output dir rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OutputDir = "   "
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() accepted a blank output_dir")
		}
	})

	t.Run("bad color scheme rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UI.ColorScheme = "neon"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() accepted an unknown color scheme")
		}
	})
}
