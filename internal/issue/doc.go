// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error types. ActionableError carries
// the failed operation, the resource involved, and concrete suggestions so
// CLI output tells users what to do next instead of dumping a raw error
// chain at them.
package issue
