// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers: GOOS name
// constants, Windows reserved filenames, and detection of OS artifact files
// that must never end up inside a release archive.
package platform
