// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"blendpack-cli/pkg/blinfo"

	"github.com/pelletier/go-toml/v2"
)

// ExtensionManifestName is the manifest filename Blender 4.2+ reads when an
// archive is installed through the extensions system.
const ExtensionManifestName = "blender_manifest.toml"

// ExtensionManifest mirrors the blender_manifest.toml schema. It is derived
// entirely from bl_info so legacy add-ons stay installable as extensions
// without maintaining the metadata twice.
type ExtensionManifest struct {
	SchemaVersion string   `toml:"schema_version"`
	ID            string   `toml:"id"`
	Version       string   `toml:"version"`
	Name          string   `toml:"name"`
	Tagline       string   `toml:"tagline"`
	Maintainer    string   `toml:"maintainer"`
	Type          string   `toml:"type"`
	BlenderMin    string   `toml:"blender_version_min"`
	License       []string `toml:"license"`
	Tags          []string `toml:"tags,omitempty"`
}

// NewExtensionManifest builds the extension record for an addon.
func NewExtensionManifest(addonID string, meta *blinfo.Metadata) *ExtensionManifest {
	ext := &ExtensionManifest{
		SchemaVersion: "1.0.0",
		ID:            addonID,
		Version:       meta.Version.String(),
		Name:          meta.Name,
		Tagline:       meta.Description,
		Maintainer:    meta.Author,
		Type:          "add-on",
		BlenderMin:    meta.Blender.String(),
		License:       []string{"SPDX:MIT"},
	}
	if meta.Category != "" {
		ext.Tags = []string{meta.Category}
	}
	return ext
}

// WriteExtensionManifest marshals the record as TOML into dir.
func WriteExtensionManifest(dir, addonID string, meta *blinfo.Metadata) (string, error) {
	data, err := toml.Marshal(NewExtensionManifest(addonID, meta))
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", ExtensionManifestName, err)
	}

	path := filepath.Join(dir, ExtensionManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ExtensionManifestName, err)
	}
	return path, nil
}
