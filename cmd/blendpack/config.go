// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"blendpack-cli/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd manages blendpack configuration
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage blendpack configuration",
		Long: `Manage blendpack configuration.

Configuration is stored in:
  - Linux: ~/.config/blendpack/config.cue
  - macOS: ~/Library/Application Support/blendpack/config.cue
  - Windows: %APPDATA%\blendpack\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE:  runConfigShow,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE:  runConfigPath,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	path, err := config.FilePath()
	switch {
	case err == nil && fileExists(path):
		fmt.Printf("%s: %s\n", PathStyle.Render("Config file"), path)
	default:
		fmt.Printf("%s: %s\n", PathStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", PathStyle.Render("output_dir"), SuccessStyle.Render(cfg.OutputDir))
	fmt.Printf("%s: %s\n", PathStyle.Render("blender_binary"), SuccessStyle.Render(orUnset(cfg.BlenderBinary)))
	fmt.Printf("%s: %s\n", PathStyle.Render("keep_staging"), SuccessStyle.Render(fmt.Sprintf("%t", cfg.KeepStaging)))
	fmt.Printf("%s: %s\n", PathStyle.Render("ui.verbose"), SuccessStyle.Render(fmt.Sprintf("%t", cfg.UI.Verbose)))
	fmt.Printf("%s: %s\n", PathStyle.Render("ui.color_scheme"), SuccessStyle.Render(string(cfg.UI.ColorScheme)))

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.FilePath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func orUnset(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
