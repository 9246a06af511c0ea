// SPDX-License-Identifier: MPL-2.0

// Package addon implements the packaging operations for a Blender add-on:
// staging the declared files into a directory named after the addon
// identifier, generating release documents, validating the staged
// structure, writing the timestamped ZIP release artifact, and inspecting
// existing artifacts against the archive invariants.
//
// The release artifact contract: exactly one top-level directory, named
// exactly the addon identifier, containing every required file and no OS
// artifact files. Archives are immutable; an existing file is never
// overwritten.
package addon
