package textutil

import (
	"strings"
	"unicode"
)

// unsafeFileChars are rejected in names that become files on disk.
const unsafeFileChars = "/\\:*?\"<>|"

// IsHiddenName reports whether a directory entry should be ignored because it
// is hidden or a relative-path marker.
func IsHiddenName(name string) bool {
	return name == "" || strings.HasPrefix(name, ".")
}

// IsSafeFileName reports whether name can be used verbatim as a file stem.
// Names must be non-empty after trimming, must not be hidden, and must not
// contain path separators, control characters, or shell-reserved characters.
func IsSafeFileName(name string) bool {
	if strings.TrimSpace(name) != name || name == "" {
		return false
	}
	if IsHiddenName(name) {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(unsafeFileChars, r) {
			return false
		}
	}
	return true
}
