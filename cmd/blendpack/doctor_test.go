// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"blendpack-cli/internal/config"
	"blendpack-cli/internal/testutil"
)

func TestFindBlenderConfigured(t *testing.T) {
	binary := filepath.Join(t.TempDir(), "blender")
	testutil.WriteFile(t, binary, "#!/bin/sh\n")

	orig := cfg
	defer func() { cfg = orig }()
	cfg = config.DefaultConfig()
	cfg.BlenderBinary = binary

	path, err := findBlender()
	if err != nil {
		t.Fatalf("findBlender() error = %v", err)
	}
	if path != binary {
		t.Errorf("findBlender() = %q, want %q", path, binary)
	}
}

func TestFindBlenderConfiguredMissing(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()
	cfg = config.DefaultConfig()
	cfg.BlenderBinary = filepath.Join(t.TempDir(), "no-such-blender")

	if _, err := findBlender(); err == nil {
		t.Error("findBlender() should fail for a missing configured binary")
	}
}

func TestFindBlenderConfiguredDirectory(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()
	cfg = config.DefaultConfig()
	cfg.BlenderBinary = t.TempDir()

	if _, err := findBlender(); err == nil {
		t.Error("findBlender() should reject a directory path")
	}
}
