// SPDX-License-Identifier: MPL-2.0

package addon

import (
	"fmt"
)

// TimestampLayout is the archive-name timestamp format. Second resolution
// keeps names sortable; the no-overwrite rule in Archive covers the case
// of two runs inside the same second.
const TimestampLayout = "20060102_150405"

type (
	// ValidationIssue is a single domain-level validation problem. Issues
	// are collected and reported as a batch via ValidationResult; error
	// returns are reserved for I/O failures that prevent validation from
	// continuing.
	ValidationIssue struct {
		// Type categorizes the issue: "structure", "metadata", "naming",
		// "security", "compatibility", or "junk".
		Type string
		// Message describes the specific problem.
		Message string
		// Path is the relative path where the issue was found (optional).
		Path string
	}

	// ValidationResult is the outcome of validating a staged addon.
	ValidationResult struct {
		// Valid is true when no issues were found.
		Valid bool
		// StagingDir is the absolute path that was validated.
		StagingDir string
		// AddonID is the identifier derived from the directory name.
		AddonID string
		// Issues lists every problem found.
		Issues []ValidationIssue
	}
)

// Error formats the issue as "[type] path: message".
func (i ValidationIssue) Error() string {
	if i.Path != "" {
		return fmt.Sprintf("[%s] %s: %s", i.Type, i.Path, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Type, i.Message)
}

// AddIssue records a problem and marks the result invalid.
func (r *ValidationResult) AddIssue(issueType, message, path string) {
	r.Valid = false
	r.Issues = append(r.Issues, ValidationIssue{Type: issueType, Message: message, Path: path})
}
