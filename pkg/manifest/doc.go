// SPDX-License-Identifier: MPL-2.0

// Package manifest loads and validates blendpack.cue, the packaging
// manifest that declares the addon identifier, the enumerable file lists
// (required, documentation, optional), generated release documents, and
// packaging hooks. The manifest is the authoritative contract for what a
// release artifact contains.
package manifest
