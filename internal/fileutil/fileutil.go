// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "letters" -> false (name)
//   - "./letters.yaml" -> true (relative path)
//   - "/etc/xlsx2docx.yaml" -> true (absolute)
//   - "C:\config\letters.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExtension reports whether path ends with one of exts, ignoring case.
// Each ext includes the leading dot.
func HasExtension(path string, exts ...string) bool {
	got := filepath.Ext(path)
	for _, ext := range exts {
		if strings.EqualFold(got, ext) {
			return true
		}
	}
	return false
}
