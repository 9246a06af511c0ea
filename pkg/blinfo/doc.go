// SPDX-License-Identifier: MPL-2.0

// Package blinfo reads the bl_info metadata block from a Blender add-on's
// __init__.py. Blender itself discovers add-ons by evaluating this dict, so
// it is the authoritative identity record for packaging: the archive name
// embeds its version, and installation tooling validates its fields.
//
// Only the literal subset Python allows inside bl_info is understood:
// string literals, integer tuples, integers, and booleans. That matches
// what Blender's own add-on scanner accepts without importing the module.
package blinfo
