// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// runtime.GOOS values for the three platforms Blender ships on. Archives
// built here must install on all of them, which is why this package also
// screens for per-OS junk files and Windows-reserved names.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current process runs on Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}
