// SPDX-License-Identifier: MPL-2.0

package blinfo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleInit = `bl_info = {
    "name": "Procedural Lighting System",
    "author": "Your Name",
    "version": (1, 0, 0),
    "blender": (4, 1, 0),
    "location": "3D Viewport > Sidebar > Lighting",
    "description": "Advanced procedural lighting system for scene management",
    "category": "Lighting",
    "support": "COMMUNITY",
}

import bpy

def register():
    pass
`

func TestParse(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		meta, err := Parse([]byte(sampleInit))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}

		if meta.Name != "Procedural Lighting System" {
			t.Errorf("Name = %q", meta.Name)
		}
		if meta.Version != (Version{1, 0, 0}) {
			t.Errorf("Version = %v, want (1, 0, 0)", meta.Version)
		}
		if meta.Blender != (Version{4, 1, 0}) {
			t.Errorf("Blender = %v, want (4, 1, 0)", meta.Blender)
		}
		if meta.Category != "Lighting" {
			t.Errorf("Category = %q", meta.Category)
		}
		if meta.Support != "COMMUNITY" {
			t.Errorf("Support = %q", meta.Support)
		}
		if got := meta.Version.String(); got != "1.0.0" {
			t.Errorf("Version.String() = %q, want \"1.0.0\"", got)
		}
	})

	t.Run("missing bl_info", func(t *testing.T) {
		_, err := Parse([]byte("import bpy\n\ndef register():\n    pass\n"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Parse() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("bl_info mentioned in a string does not match", func(t *testing.T) {
		src := `content = "contains bl_info marker"` + "\n"
		_, err := Parse([]byte(src))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Parse() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("comments inside dict are ignored", func(t *testing.T) {
		src := `bl_info = {
    # identity
    "name": "Thing",  # shown in preferences
    "version": (2, 5, 1),
    "blender": (4, 2, 0),
    "category": "Object",
}
`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if meta.Version != (Version{2, 5, 1}) {
			t.Errorf("Version = %v, want (2, 5, 1)", meta.Version)
		}
	})

	t.Run("single quoted strings and trailing comma", func(t *testing.T) {
		src := `bl_info = {'name': 'Quoted', 'version': (0, 9, 0), 'blender': (3, 6, 0), 'category': 'Mesh'}`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if meta.Name != "Quoted" {
			t.Errorf("Name = %q", meta.Name)
		}
	})

	t.Run("two element version tuple", func(t *testing.T) {
		src := `bl_info = {"name": "Short", "version": (1, 4), "blender": (4, 1, 0), "category": "Render"}`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if meta.Version != (Version{1, 4, 0}) {
			t.Errorf("Version = %v, want (1, 4, 0)", meta.Version)
		}
	})

	t.Run("longer identifier sharing the prefix does not match", func(t *testing.T) {
		src := `bl_info_defaults = {"name": "unused"}

bl_info = {
    "name": "Real Thing",
    "version": (1, 0, 0),
    "blender": (4, 1, 0),
    "category": "Lighting",
}
`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if meta.Name != "Real Thing" {
			t.Errorf("Name = %q, want the real bl_info dict", meta.Name)
		}
	})

	t.Run("subscript assignment before the dict is skipped", func(t *testing.T) {
		src := `bl_info["name"] = "patched"
bl_info = {"name": "X", "version": (1, 0, 0), "blender": (4, 1, 0), "category": "Mesh"}
`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatalf("Parse() failed: %v", err)
		}
		if meta.Name != "X" {
			t.Errorf("Name = %q", meta.Name)
		}
	})

	t.Run("comparison is not an assignment", func(t *testing.T) {
		src := `bl_info == other` + "\n"
		if _, err := Parse([]byte(src)); !errors.Is(err, ErrNotFound) {
			t.Errorf("Parse() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("non-tuple version rejected", func(t *testing.T) {
		src := `bl_info = {"name": "Bad", "version": "1.0.0"}`
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatal("Parse() accepted a string version")
		}
	})

	t.Run("unclosed dict rejected", func(t *testing.T) {
		src := `bl_info = {"name": "Broken",`
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatal("Parse() accepted an unclosed dict")
		}
	})

	t.Run("unknown keys tolerated", func(t *testing.T) {
		src := `bl_info = {"name": "X", "version": (1, 0, 0), "blender": (4, 1, 0), "category": "Lighting", "tracker_url": "https://example.com"}`
		if _, err := Parse([]byte(src)); err != nil {
			t.Fatalf("Parse() failed on unknown key: %v", err)
		}
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, EntryFile)
	if err := os.WriteFile(path, []byte(sampleInit), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() failed: %v", err)
	}
	if meta.Name == "" {
		t.Error("ParseFile() returned empty metadata")
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.py")); err == nil {
		t.Error("ParseFile() succeeded on a missing file")
	}
}

func TestValidate(t *testing.T) {
	t.Run("complete record has no problems", func(t *testing.T) {
		meta, err := Parse([]byte(sampleInit))
		if err != nil {
			t.Fatal(err)
		}
		if problems := meta.Validate(); len(problems) != 0 {
			t.Errorf("Validate() = %v, want none", problems)
		}
	})

	t.Run("missing required fields reported individually", func(t *testing.T) {
		src := `bl_info = {"name": "Sparse", "version": (1, 0, 0)}`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		joined := strings.Join(meta.Validate(), "\n")
		for _, field := range []string{"blender", "category"} {
			if !strings.Contains(joined, field) {
				t.Errorf("Validate() missing problem for %q: %s", field, joined)
			}
		}
	})

	t.Run("recommended fields reported separately", func(t *testing.T) {
		src := `bl_info = {"name": "Sparse", "version": (1, 0, 0), "blender": (4, 1, 0), "category": "Object"}`
		meta, err := Parse([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if problems := meta.Validate(); len(problems) != 0 {
			t.Errorf("Validate() = %v, want none", problems)
		}
		hints := strings.Join(meta.Recommend(), "\n")
		for _, field := range []string{"author", "location", "description"} {
			if !strings.Contains(hints, field) {
				t.Errorf("Recommend() missing hint for %q: %s", field, hints)
			}
		}
	})
}
