// Package utils contains general helper functions used across repopack.
package utils

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	currentDirectoryPrefix = "./"
	timestampLayout        = "2006-01-02 15:04:05 MST"
)

// NormalizeRelativePath converts a relative path to forward-slash form and strips a leading "./".
// Backslashes are separators only on hosts that use them; elsewhere they are part of a name.
func NormalizeRelativePath(relativePath string) string {
	normalized := filepath.ToSlash(relativePath)
	for strings.HasPrefix(normalized, currentDirectoryPrefix) {
		normalized = strings.TrimPrefix(normalized, currentDirectoryPrefix)
	}
	return normalized
}

// RelativePathOrSelf calculates the forward-slash relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails and "." if both resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// FormatTimestamp returns value in the local time zone with second precision.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(timestampLayout)
}
