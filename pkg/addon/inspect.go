// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"archive/zip"
	"fmt"
	"strings"

	"blendpack-cli/pkg/manifest"
	"blendpack-cli/pkg/platform"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// InspectReport is the result of opening a release artifact and
	// checking it against the archive invariants.
	InspectReport struct {
		// ArchivePath is the inspected file.
		ArchivePath string
		// Root is the single top-level directory name, empty when the
		// archive violates the single-root invariant.
		Root string
		// Entries lists the file entries (directories excluded), with
		// names relative to the archive root.
		Entries []InspectEntry
		// Violations lists every invariant the archive breaks.
		Violations []string
	}

	// InspectEntry is one file inside the artifact.
	InspectEntry struct {
		Name             string
		UncompressedSize uint64
	}
)

// Valid reports whether the artifact satisfies all invariants checked so far.
func (r *InspectReport) Valid() bool {
	return len(r.Violations) == 0
}

// Inspect opens a release artifact and checks the structural invariants:
// exactly one top-level directory, no loose files at the root, and no OS
// artifact entries. Identifier and required-file checks need the manifest
// and live in CheckAgainst.
func Inspect(zipPath string) (report *InspectReport, err error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	report = &InspectReport{ArchivePath: zipPath}

	roots := map[string]bool{}
	for _, file := range reader.File {
		name := strings.TrimSuffix(file.Name, "/")
		if name == "" {
			continue
		}

		segments := strings.Split(name, "/")
		roots[segments[0]] = true

		if len(segments) == 1 && !file.FileInfo().IsDir() {
			report.Violations = append(report.Violations,
				fmt.Sprintf("loose file %q at archive root: all content must live under a single addon directory", name))
		}

		base := segments[len(segments)-1]
		if platform.IsJunkName(base) {
			report.Violations = append(report.Violations,
				fmt.Sprintf("OS artifact entry %q must not be in a release archive", name))
		}

		if !file.FileInfo().IsDir() {
			report.Entries = append(report.Entries, InspectEntry{
				Name:             name,
				UncompressedSize: file.UncompressedSize64,
			})
		}
	}

	switch len(roots) {
	case 0:
		report.Violations = append(report.Violations, "archive is empty")
	case 1:
		report.Root = maps.Keys(roots)[0]
	default:
		names := maps.Keys(roots)
		slices.Sort(names)
		report.Violations = append(report.Violations,
			fmt.Sprintf("archive has %d top-level entries (%s), expected exactly one directory", len(names), strings.Join(names, ", ")))
	}

	slices.SortFunc(report.Entries, func(a, b InspectEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return report, nil
}

// CheckAgainst verifies the manifest-dependent invariants: the root
// directory must equal the addon identifier and every required file must
// be present inside it. When the single-root invariant already failed
// there is no root to look under, so the per-file check is skipped rather
// than reporting every required file as missing.
func (r *InspectReport) CheckAgainst(m *manifest.Manifest) {
	if r.Root == "" {
		return
	}
	if r.Root != m.Addon {
		r.Violations = append(r.Violations,
			fmt.Sprintf("archive root %q does not match addon identifier %q", r.Root, m.Addon))
	}

	present := map[string]bool{}
	for _, entry := range r.Entries {
		if rel, ok := strings.CutPrefix(entry.Name, r.Root+"/"); ok {
			present[rel] = true
		}
	}

	for _, required := range m.Files.Required {
		if !present[required] {
			r.Violations = append(r.Violations,
				fmt.Sprintf("required file %s missing from archive", required))
		}
	}
}
