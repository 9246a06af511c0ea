// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"blendpack-cli/internal/hooks"
	"blendpack-cli/pkg/addon"
	"blendpack-cli/pkg/blinfo"

	"github.com/spf13/cobra"
)

var (
	validateStaged bool

	// validateCmd checks an addon directory without packaging it.
	validateCmd = &cobra.Command{
		Use:   "validate [addon-dir]",
		Short: "Check an addon directory against the packaging rules",
		Long: `Check an addon directory against the packaging rules without
building anything.

By default the source directory is validated against its manifest:
required files must exist and __init__.py must carry complete bl_info
metadata. With --staged the directory is treated as an already staged
tree and checked against the full release contract, including junk
files and Windows-incompatible names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().BoolVar(&validateStaged, "staged", false, "validate an already staged addon tree")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	var (
		result *addon.ValidationResult
		err    error
	)
	if validateStaged {
		result, err = addon.Validate(dir)
	} else {
		result, err = validateSourceDir(dir)
	}
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Printf("%s %s is valid\n", SuccessStyle.Render("✓"), PathStyle.Render(result.StagingDir))
		printRecommendations(dir)
		return nil
	}

	fmt.Printf("%s %s has %d issue(s):\n", ErrorStyle.Render("✗"), PathStyle.Render(result.StagingDir), len(result.Issues))
	for _, iss := range result.Issues {
		fmt.Printf("  %s %s\n", ErrorStyle.Render("["+iss.Type+"]"), iss.Error())
	}

	return &ExitError{Code: 1, Err: fmt.Errorf("validation failed with %d issue(s)", len(result.Issues))}
}

// validateSourceDir validates a source directory against its manifest,
// including the hook scripts' shell syntax.
func validateSourceDir(dir string) (*addon.ValidationResult, error) {
	m, err := loadManifestFor(dir)
	if err != nil {
		return nil, err
	}

	result, err := addon.ValidateSource(dir, m)
	if err != nil {
		return nil, err
	}

	for _, hook := range []struct {
		name, script string
	}{
		{"hooks.pre_package", m.Hooks.PrePackage},
		{"hooks.post_package", m.Hooks.PostPackage},
	} {
		if hook.script == "" {
			continue
		}
		if checkErr := hooks.Check(hook.script); checkErr != nil {
			result.AddIssue("metadata", checkErr.Error(), hook.name)
		}
	}

	return result, nil
}

// printRecommendations surfaces missing recommended bl_info fields as hints.
func printRecommendations(dir string) {
	meta, err := blinfo.ParseFile(filepath.Join(dir, blinfo.EntryFile))
	if err != nil {
		return
	}
	for _, hint := range meta.Recommend() {
		fmt.Printf("  %s %s\n", WarningStyle.Render("hint:"), hint)
	}
}
