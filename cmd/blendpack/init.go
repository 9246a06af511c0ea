// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"blendpack-cli/pkg/manifest"

	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initTemplate string
	initAddonID  string

	// initCmd creates a new blendpack.cue manifest
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new blendpack.cue manifest in the current directory",
		Long: `Create a new blendpack.cue manifest in the current directory.

This command generates a starter manifest declaring the addon's file
lists. The addon identifier defaults to the current directory name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing manifest")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal, full)")
	initCmd.Flags().StringVar(&initAddonID, "addon", "", "addon identifier (default is the directory name)")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := manifest.DefaultName
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	addonID := initAddonID
	if addonID == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		addonID = filepath.Base(wd)
	}
	if !manifest.IsValidAddonID(addonID) {
		return fmt.Errorf("addon identifier %q is invalid: must start with a lowercase letter and contain only lowercase letters, digits, and underscores (set one with --addon)", addonID)
	}

	content := generateManifest(initTemplate, addonID)

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the manifest to list your addon's files")
	fmt.Println("  2. Run 'blendpack validate' to check the addon")
	fmt.Println("  3. Run 'blendpack package' to build the archive")

	return nil
}

// generateManifest renders a starter manifest for the given template.
func generateManifest(template, addonID string) string {
	switch template {
	case "minimal":
		return fmt.Sprintf(`addon: %q

files: {
	required: ["__init__.py"]
}
`, addonID)

	case "full":
		return fmt.Sprintf(`addon: %q

files: {
	required: [
		"__init__.py",
		"properties.py",
		"operators.py",
		"ui.py",
		"presets.py",
		"utils.py",
	]
	docs: [
		"README.md",
		"sample_scene.py",
	]
	optional: [
		"LICENSE",
		"CHANGELOG.md",
	]
}

generate: {
	license:       true
	changelog:     true
	install_guide: true
}

hooks: {
	pre_package:  "echo \"packaging $BLENDPACK_ADDON v$BLENDPACK_VERSION\""
	post_package: "echo \"wrote $BLENDPACK_ARCHIVE\""
}

output: dir: "dist"
`, addonID)

	default: // "default"
		return fmt.Sprintf(`addon: %q

files: {
	required: [
		"__init__.py",
	]
	docs: [
		"README.md",
	]
	optional: [
		"LICENSE",
		"CHANGELOG.md",
	]
}

output: dir: "."
`, addonID)
	}
}
