// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blendpack-cli/pkg/blinfo"
	"blendpack-cli/pkg/manifest"
)

const licenseTemplate = `MIT License

Copyright (c) %d %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

const changelogTemplate = `# Changelog

## [%s] - %s

### Added
- Release of %s.

%s
### Requirements
- Blender %s or higher
`

const installGuideTemplate = `# Installation Guide

## Quick Install

1. **Download** the ZIP file
2. **Open Blender %s+**
3. Go to ` + "`Edit` → `Preferences` → `Add-ons`" + `
4. Click ` + "`Install...`" + ` and select the ZIP file
5. Enable **%s** in the add-on list

## First Use

%s

## Troubleshooting

- **Add-on not showing**: check Blender version compatibility (%s+)
- **Panels missing**: make sure the add-on is enabled in preferences

For more help, see the full README.md file.
`

// Generate writes the release documents enabled in the manifest into the
// staging directory, skipping any file the source tree already provides.
// The Blender 4.2+ extension manifest is always generated so the artifact
// installs through both the legacy add-on path and the extensions system.
// Returns the relative names of the files actually written.
func Generate(stagingDir string, m *manifest.Manifest, meta *blinfo.Metadata, now time.Time) ([]string, error) {
	var written []string

	if m.Generate.License {
		ok, err := writeIfAbsent(stagingDir, "LICENSE", renderLicense(meta, now))
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, "LICENSE")
		}
	}

	if m.Generate.Changelog {
		ok, err := writeIfAbsent(stagingDir, "CHANGELOG.md", renderChangelog(meta, now))
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, "CHANGELOG.md")
		}
	}

	if m.Generate.InstallGuide {
		ok, err := writeIfAbsent(stagingDir, "INSTALLATION.md", renderInstallGuide(meta))
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, "INSTALLATION.md")
		}
	}

	if _, err := os.Stat(filepath.Join(stagingDir, manifest.ExtensionManifestName)); os.IsNotExist(err) {
		if _, err := manifest.WriteExtensionManifest(stagingDir, m.Addon, meta); err != nil {
			return written, err
		}
		written = append(written, manifest.ExtensionManifestName)
	}

	return written, nil
}

// Document is a release document rendered from bl_info metadata.
type Document struct {
	// Name is the filename the document would be written as.
	Name string
	// Content is the rendered document body.
	Content string
}

// RenderDocuments returns the release documents Generate would write,
// without touching the filesystem, honoring the manifest's generate
// flags. The extension manifest is excluded: it is TOML, not prose.
func RenderDocuments(m *manifest.Manifest, meta *blinfo.Metadata, now time.Time) []Document {
	var docs []Document
	if m.Generate.License {
		docs = append(docs, Document{Name: "LICENSE", Content: renderLicense(meta, now)})
	}
	if m.Generate.Changelog {
		docs = append(docs, Document{Name: "CHANGELOG.md", Content: renderChangelog(meta, now)})
	}
	if m.Generate.InstallGuide {
		docs = append(docs, Document{Name: "INSTALLATION.md", Content: renderInstallGuide(meta)})
	}
	return docs
}

func renderLicense(meta *blinfo.Metadata, now time.Time) string {
	holder := meta.Author
	if holder == "" {
		holder = meta.Name
	}
	return fmt.Sprintf(licenseTemplate, now.Year(), holder)
}

func renderChangelog(meta *blinfo.Metadata, now time.Time) string {
	features := ""
	if meta.Description != "" {
		features = fmt.Sprintf("### Features\n- %s\n", meta.Description)
	}
	return fmt.Sprintf(changelogTemplate,
		meta.Version, now.Format("2006-01-02"), meta.Name, features, meta.Blender)
}

func renderInstallGuide(meta *blinfo.Metadata) string {
	firstUse := "Open Blender and look for the add-on's panels."
	if meta.Location != "" {
		firstUse = fmt.Sprintf("Find the add-on at: %s", meta.Location)
	}
	return fmt.Sprintf(installGuideTemplate,
		meta.Blender, meta.Name, firstUse, meta.Blender)
}

// writeIfAbsent writes content to name inside dir unless the file already
// exists. The source tree's own LICENSE or CHANGELOG always wins.
func writeIfAbsent(dir, name, content string) (bool, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("cannot access %s: %w", name, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return true, nil
}
