package utils

import (
	"path"
	"path/filepath"
	"strings"
)

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// AllowedImageExt reports whether the filename's last dot-segment is an
// accepted image extension (case-insensitive).
func AllowedImageExt(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}

// SanitizeFilename strips any path components and replaces characters outside
// [a-zA-Z0-9._-] with underscores. Returns "file" if nothing survives.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

// SafeSegment reports whether s can be used as a single path segment under an
// upload root: non-empty, no separators, no parent traversal.
func SafeSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}
