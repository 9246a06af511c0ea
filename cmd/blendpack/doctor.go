// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"blendpack-cli/pkg/manifest"
	"blendpack-cli/pkg/platform"

	"github.com/spf13/cobra"
)

// doctorCmd checks the local environment for packaging prerequisites.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local environment for packaging prerequisites",
	Long: `Check the local environment for packaging prerequisites.

Verifies that a Blender executable can be found (via the configured
blender_binary or on PATH) and that the current directory carries a
usable manifest. Exits non-zero when a required check fails.`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(TitleStyle.Render("blendpack doctor"))
	fmt.Println()

	failed := 0

	if path, err := findBlender(); err != nil {
		failed++
		fmt.Printf("%s Blender executable: %s\n", ErrorStyle.Render("✗"), err)
		fmt.Printf("  %s\n", SubtitleStyle.Render("install Blender or set blender_binary in the config file"))
	} else {
		fmt.Printf("%s Blender executable: %s\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	}

	if path, err := manifest.Find("."); err != nil {
		fmt.Printf("%s manifest: %s\n", WarningStyle.Render("!"), err)
		fmt.Printf("  %s\n", SubtitleStyle.Render("run 'blendpack init' inside an addon directory"))
	} else if _, err := manifest.Load(path); err != nil {
		failed++
		fmt.Printf("%s manifest: %s\n", ErrorStyle.Render("✗"), err)
	} else {
		fmt.Printf("%s manifest: %s\n", SuccessStyle.Render("✓"), PathStyle.Render(path))
	}

	fmt.Println()
	if failed > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d check(s) failed", failed)}
	}
	fmt.Printf("%s environment looks good\n", SuccessStyle.Render("✓"))
	return nil
}

// findBlender resolves the Blender executable, preferring the configured
// blender_binary over a PATH lookup.
func findBlender() (string, error) {
	if cfg.BlenderBinary != "" {
		info, err := os.Stat(cfg.BlenderBinary)
		if err != nil {
			return "", fmt.Errorf("configured blender_binary %s: %w", cfg.BlenderBinary, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("configured blender_binary %s is a directory", cfg.BlenderBinary)
		}
		return cfg.BlenderBinary, nil
	}

	names := []string{"blender"}
	if platform.IsWindows() {
		names = []string{"blender.exe", "blender"}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("not found on PATH")
}
