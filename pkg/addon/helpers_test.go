// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"os"
	"path/filepath"
	"testing"

	"blendpack-cli/pkg/manifest"
)

const testInit = `bl_info = {
    "name": "Procedural Lighting System",
    "author": "Your Name",
    "version": (1, 0, 0),
    "blender": (4, 1, 0),
    "location": "3D Viewport > Sidebar > Lighting",
    "description": "Advanced procedural lighting system for scene management",
    "category": "Lighting",
    "support": "COMMUNITY",
}
`

// testManifest declares the classic addon layout used across these tests.
func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Addon: "procedural_lighting_system",
		Files: manifest.FileSet{
			Required: []string{"__init__.py", "properties.py", "operators.py", "ui.py", "presets.py", "utils.py"},
			Docs:     []string{"README.md", "sample_scene.py"},
			Optional: []string{"LICENSE", "CHANGELOG.md"},
		},
		Generate: manifest.Generate{License: true, Changelog: true, InstallGuide: true},
		Output:   manifest.Output{Dir: "."},
	}
}

// newAddonDir creates a source tree containing every required file plus
// the README doc. Returns the directory path.
func newAddonDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"__init__.py":   testInit,
		"properties.py": "import bpy\n",
		"operators.py":  "import bpy\n",
		"ui.py":         "import bpy\n",
		"presets.py":    "PRESETS = {}\n",
		"utils.py":      "def noop():\n    pass\n",
		"README.md":     "# Procedural Lighting System\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
