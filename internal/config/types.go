// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark colors.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light colors.
	ColorSchemeLight ColorScheme = "light"
)

// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
var ErrInvalidColorScheme = errors.New("invalid color scheme")

type (
	// ColorScheme is the terminal color scheme preference.
	ColorScheme string

	// UIConfig holds presentation preferences.
	UIConfig struct {
		Verbose     bool        `mapstructure:"verbose"`
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
	}

	// Config is the resolved blendpack configuration.
	Config struct {
		// OutputDir is the default directory for release archives.
		OutputDir string `mapstructure:"output_dir"`

		// BlenderBinary is an explicit Blender executable path for the
		// doctor command. Empty means search PATH.
		BlenderBinary string `mapstructure:"blender_binary"`

		// KeepStaging leaves staging directories behind after packaging.
		KeepStaging bool `mapstructure:"keep_staging"`

		UI UIConfig `mapstructure:"ui"`
	}
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks value constraints the schema already enforces for file
// input; it guards values injected through environment variables too.
func (c *Config) Validate() error {
	switch c.UI.ColorScheme {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}

	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir cannot be blank")
	}

	return nil
}
