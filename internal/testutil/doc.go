// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test helpers: a Clock abstraction so
// timestamped archive names are deterministic under test, and small
// filesystem helpers for tests that must change the working directory.
package testutil
