// SPDX-License-Identifier: MPL-2.0

package platform

import "strings"

// junkNames are filesystem droppings left behind by operating systems,
// editors, and the Python runtime. A release archive must not contain any
// of them: Blender installs the archive verbatim, so every entry ships to
// end users.
var junkNames = map[string]bool{
	".DS_Store":   true,
	"._.DS_Store": true,
	"Thumbs.db":   true,
	"desktop.ini": true,
	"__pycache__": true,
	".git":        true,
	".gitignore":  true,
	".svn":        true,
}

// junkSuffixes match compiled or temporary files by extension.
var junkSuffixes = []string{".pyc", ".pyo", ".swp", "~"}

// IsJunkName reports whether a file or directory base name is an OS or
// tooling artifact that should be excluded from staging and archives.
func IsJunkName(name string) bool {
	if junkNames[name] {
		return true
	}
	// AppleDouble resource forks (._foo) accompany files copied from macOS.
	if strings.HasPrefix(name, "._") {
		return true
	}
	for _, suffix := range junkSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
