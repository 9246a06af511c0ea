// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"blendpack-cli/pkg/addon"
	"blendpack-cli/pkg/manifest"

	"github.com/spf13/cobra"
)

var (
	inspectManifestPath string

	// inspectCmd verifies an existing release archive.
	inspectCmd = &cobra.Command{
		Use:   "inspect <archive.zip>",
		Short: "Verify a release archive against the packaging invariants",
		Long: `Verify a release archive against the packaging invariants:
exactly one top-level directory, no loose files at the root, and no OS
artifact entries.

When --manifest points at a blendpack.cue file, the archive is also
checked against it: the root directory must match the addon identifier
and every required file must be present.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectManifestPath, "manifest", "m", "", "manifest to check the archive against")
}

func runInspect(cmd *cobra.Command, args []string) error {
	report, err := addon.Inspect(args[0])
	if err != nil {
		return err
	}

	if inspectManifestPath != "" {
		m, loadErr := manifest.Load(inspectManifestPath)
		if loadErr != nil {
			return loadErr
		}
		report.CheckAgainst(m)
	}

	fmt.Printf("%s %s\n", TitleStyle.Render("Archive"), PathStyle.Render(report.ArchivePath))
	if report.Root != "" {
		fmt.Printf("  %s %s\n", SubtitleStyle.Render("root:"), report.Root)
	}
	fmt.Printf("  %s %d\n", SubtitleStyle.Render("files:"), len(report.Entries))
	if verbose {
		for _, entry := range report.Entries {
			fmt.Printf("    %s (%s)\n", VerboseStyle.Render(entry.Name), formatFileSize(int64(entry.UncompressedSize)))
		}
	}

	if report.Valid() {
		fmt.Printf("%s archive satisfies all invariants\n", SuccessStyle.Render("✓"))
		return nil
	}

	fmt.Printf("%s archive has %d violation(s):\n", ErrorStyle.Render("✗"), len(report.Violations))
	for _, violation := range report.Violations {
		fmt.Printf("  %s %s\n", ErrorStyle.Render("-"), violation)
	}

	return &ExitError{Code: 1, Err: fmt.Errorf("archive failed inspection")}
}
