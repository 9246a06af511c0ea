// SPDX-License-Identifier: MPL-2.0

// Package cueutil centralizes the schema-unify-decode flow used for every
// CUE file blendpack reads (config.cue, blendpack.cue). Schemas are embedded
// next to the types they validate; this package only knows how to compile,
// unify, and decode them with readable error paths.
package cueutil
