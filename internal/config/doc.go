// SPDX-License-Identifier: MPL-2.0

// Package config loads blendpack's user configuration: a config.cue file in
// the platform config directory, validated against an embedded CUE schema
// and merged with defaults and BLENDPACK_* environment variables through
// viper. Configuration holds tool-level preferences; everything describing
// a specific addon lives in its blendpack.cue manifest instead.
package config
