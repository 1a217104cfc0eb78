package util

import (
	"errors"
	"regexp"
	"strings"
)

var unsafeTokenChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// SafeToken collapses every run of characters outside [A-Za-z0-9._-] into a
// single underscore and trims leading/trailing underscores. An empty result
// yields fallback.
func SafeToken(raw, fallback string) string {
	s := unsafeTokenChars.ReplaceAllString(raw, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return fallback
	}
	return s
}
