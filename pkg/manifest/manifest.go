// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"blendpack-cli/pkg/blinfo"
	"blendpack-cli/pkg/cueutil"
)

// DefaultName is the manifest filename looked up in the addon directory.
const DefaultName = "blendpack.cue"

//go:embed manifest_schema.cue
var manifestSchema string

// addonIDRegex validates the addon identifier. The identifier becomes both
// the archive's top-level directory and the Python package name Blender
// imports, so it must be a lowercase Python module name.
var addonIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type (
	// Manifest is the parsed blendpack.cue packaging manifest.
	Manifest struct {
		// Addon is the identifier the archive's top-level directory uses.
		Addon string `json:"addon"`
		// Files enumerates what goes into the release artifact.
		Files FileSet `json:"files"`
		// Generate controls generated release documents.
		Generate Generate `json:"generate"`
		// Hooks are shell snippets run around the packaging step.
		Hooks Hooks `json:"hooks"`
		// Output configures where artifacts are written.
		Output Output `json:"output"`
	}

	// FileSet enumerates the addon's files by obligation level.
	FileSet struct {
		// Required files must all exist or packaging aborts.
		Required []string `json:"required"`
		// Docs are copied when present, warned about when absent.
		Docs []string `json:"docs"`
		// Optional files are copied when present, skipped otherwise.
		Optional []string `json:"optional"`
	}

	// Generate flags which release documents blendpack creates in the
	// staging directory when the source tree lacks them.
	Generate struct {
		License      bool `json:"license"`
		Changelog    bool `json:"changelog"`
		InstallGuide bool `json:"install_guide"`
	}

	// Hooks are optional shell snippets for the embedded interpreter.
	Hooks struct {
		PrePackage  string `json:"pre_package"`
		PostPackage string `json:"post_package"`
	}

	// Output configures artifact placement.
	Output struct {
		Dir string `json:"dir"`
	}
)

// IsValidAddonID reports whether id is a usable addon identifier.
func IsValidAddonID(id string) bool {
	return addonIDRegex.MatchString(id)
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := cueutil.Decode[Manifest](manifestSchema, data, "#Manifest", filepath.Base(path))
	if err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return m, nil
}

// Find locates the manifest for an addon directory. Returns the manifest
// path or an error when none exists.
func Find(addonDir string) (string, error) {
	path := filepath.Join(addonDir, DefaultName)
	info, err := os.Stat(path)
	switch {
	case err != nil && os.IsNotExist(err):
		return "", fmt.Errorf("no %s found in %s", DefaultName, addonDir)
	case err != nil:
		return "", fmt.Errorf("cannot access %s: %w", path, err)
	case info.IsDir():
		return "", fmt.Errorf("%s must be a file, not a directory", path)
	}
	return path, nil
}

// Validate applies the Go-level checks the CUE schema cannot express:
// path sanity for every declared file and entry-point presence.
func (m *Manifest) Validate() error {
	if !IsValidAddonID(m.Addon) {
		return fmt.Errorf("addon identifier %q is invalid: must start with a lowercase letter and contain only lowercase letters, digits, and underscores", m.Addon)
	}

	hasEntry := false
	for _, group := range [][]string{m.Files.Required, m.Files.Docs, m.Files.Optional} {
		for _, rel := range group {
			if err := checkRelPath(rel); err != nil {
				return err
			}
		}
	}
	for _, rel := range m.Files.Required {
		if rel == blinfo.EntryFile {
			hasEntry = true
		}
	}
	if !hasEntry {
		return fmt.Errorf("files.required must include %s: Blender reads bl_info from it", blinfo.EntryFile)
	}

	if strings.TrimSpace(m.Output.Dir) == "" {
		return fmt.Errorf("output.dir cannot be blank")
	}

	return nil
}

func checkRelPath(rel string) error {
	if rel == "" {
		return fmt.Errorf("file entries cannot be empty")
	}
	if filepath.IsAbs(rel) {
		return fmt.Errorf("file entry %q must be relative to the addon directory", rel)
	}
	clean := filepath.ToSlash(filepath.Clean(rel))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("file entry %q escapes the addon directory", rel)
	}
	return nil
}
