// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"blendpack-cli/internal/hooks"
	"blendpack-cli/pkg/addon"
	"blendpack-cli/pkg/manifest"

	"github.com/spf13/cobra"
)

var (
	packageOutputDir   string
	packageKeepStaging bool

	// packageCmd builds a release archive from an addon directory.
	packageCmd = &cobra.Command{
		Use:   "package [addon-dir]",
		Short: "Build a versioned release archive from an addon directory",
		Long: `Build a versioned release archive from an addon directory.

The addon's files are staged into a directory named after the addon
identifier, release documents are generated where missing, the staged
tree is validated, and the result is zipped into an archive named
<addon>_v<version>_<timestamp>.zip. Existing archives are never
overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPackage,
	}
)

func init() {
	packageCmd.Flags().StringVarP(&packageOutputDir, "output", "o", "", "directory to write the archive to (default from manifest)")
	packageCmd.Flags().BoolVar(&packageKeepStaging, "keep-staging", false, "leave the staging directory on disk after packaging")
}

func runPackage(cmd *cobra.Command, args []string) error {
	srcDir := "."
	if len(args) > 0 {
		srcDir = args[0]
	}

	m, err := loadManifestFor(srcDir)
	if err != nil {
		return err
	}

	keepStaging := packageKeepStaging || cfg.KeepStaging
	outputDir := packageOutputDir
	if outputDir == "" && cfg.OutputDir != "." {
		outputDir = cfg.OutputDir
	}

	fmt.Printf("%s %s\n", TitleStyle.Render("Packaging"), PathStyle.Render(m.Addon))

	result, err := addon.Package(cmd.Context(), addon.PackageOptions{
		SourceDir:   srcDir,
		Manifest:    m,
		OutputDir:   outputDir,
		KeepStaging: keepStaging,
		Hooks:       hooks.NewRunner(srcDir, os.Stdout, os.Stderr),
		Logger:      newLogger(),
	})
	if err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	for _, missing := range result.Staged.MissingDocs {
		fmt.Printf("%s documentation file %s not found, skipping\n", WarningStyle.Render("!"), missing)
	}
	for _, name := range result.Generated {
		fmt.Printf("%s generated %s\n", SuccessStyle.Render("+"), name)
	}

	size := archiveSize(result.ArchivePath)
	fmt.Println()
	fmt.Printf("%s Created %s (%s, %d files)\n",
		SuccessStyle.Render("✓"),
		PathStyle.Render(result.ArchivePath),
		formatFileSize(size),
		len(result.Staged.Copied)+len(result.Generated))
	fmt.Printf("  %s %s  %s Blender %s+\n",
		SubtitleStyle.Render("version"), result.Meta.Version,
		SubtitleStyle.Render("requires"), result.Meta.Blender)

	for _, hint := range result.Meta.Recommend() {
		fmt.Printf("  %s %s\n", WarningStyle.Render("hint:"), hint)
	}

	return nil
}

// loadManifestFor locates and loads the manifest for an addon directory.
func loadManifestFor(srcDir string) (*manifest.Manifest, error) {
	path, err := manifest.Find(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'blendpack init' to create one)", err)
	}
	return manifest.Load(path)
}

// archiveSize returns the file size in bytes, or 0 when it cannot be read.
func archiveSize(path string) int64 {
	info, err := os.Stat(filepath.Clean(path))
	if err != nil {
		return 0
	}
	return info.Size()
}

// formatFileSize renders a byte count in a human-friendly unit.
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
