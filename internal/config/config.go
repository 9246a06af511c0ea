// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"blendpack-cli/internal/issue"
	"blendpack-cli/pkg/cueutil"
	"blendpack-cli/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "blendpack"
	// ConfigFileName is the config file name inside the config directory.
	ConfigFileName = "config.cue"
	// EnvPrefix prefixes environment variable overrides (BLENDPACK_*).
	EnvPrefix = "BLENDPACK"
)

//go:embed config_schema.cue
var configSchema string

// Dir returns the blendpack configuration directory using platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on
// macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func Dir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string
	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FilePath returns the resolved config file path, honoring the --config
// flag override. The file may not exist.
func FilePath() (string, error) {
	if configFileOverride != "" {
		return configFileOverride, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load resolves the configuration: defaults, then the config file when it
// exists, then BLENDPACK_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("blender_binary", defaults.BlenderBinary)
	v.SetDefault("keep_staging", defaults.KeepStaging)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := FilePath()
	if err != nil {
		return nil, err
	}

	if data, readErr := os.ReadFile(path); readErr == nil {
		values, decodeErr := cueutil.Decode[map[string]any](configSchema, data, "#Config", filepath.Base(path))
		if decodeErr != nil {
			return nil, issue.NewContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Run 'blendpack config show' to see the expected fields").
				Wrap(decodeErr).
				BuildError()
		}
		if mergeErr := v.MergeConfigMap(*values); mergeErr != nil {
			return nil, issue.Wrap(mergeErr, "merge configuration", path)
		}
	} else if !os.IsNotExist(readErr) {
		return nil, issue.Wrap(readErr, "read configuration", path)
	} else if configFileOverride != "" {
		// An explicitly requested config file must exist.
		return nil, issue.NewContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the file path is correct").
			Wrap(readErr).
			BuildError()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, issue.Wrap(err, "decode configuration", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, issue.NewContext().
			WithOperation("validate configuration").
			WithResource(path).
			Wrap(err).
			BuildError()
	}

	return cfg, nil
}
