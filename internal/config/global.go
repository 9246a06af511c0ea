// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to redirect the config directory.
// os.UserHomeDir() doesn't reliably respect the HOME environment variable
// on all platforms, so tests set this instead of faking HOME.
var configDirOverride string

// configFileOverride holds a --config flag value.
var configFileOverride string

// Reset clears overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
	configFileOverride = ""
}

// SetDirOverride redirects the config directory (testing).
func SetDirOverride(dir string) {
	configDirOverride = dir
}

// SetFileOverride sets an explicit config file path (--config flag).
func SetFileOverride(path string) {
	configFileOverride = path
}
