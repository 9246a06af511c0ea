// SPDX-License-Identifier: MPL-2.0

// Package hooks runs the manifest's pre/post packaging hook scripts on an
// embedded POSIX shell interpreter. No external shell is required, so hook
// behavior is identical across platforms.
package hooks
