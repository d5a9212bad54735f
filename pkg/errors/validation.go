package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxBaseNameLength bounds base layout names; Android resource names are short.
const maxBaseNameLength = 128

// baseNameRegex matches names usable as a resource file stem.
var baseNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateBaseName validates a base layout name for safety and correctness.
// It rejects names that could be used for path traversal or key injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Only letters, digits, '_', '.' and '-'
//   - Maximum length of 128 characters
func ValidateBaseName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "base layout name cannot be empty")
	}

	if len(name) > maxBaseNameLength {
		return New(ErrCodeInvalidName, "base layout name too long (max %d characters)", maxBaseNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "base layout name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "base layout name contains invalid characters: %q", pattern)
		}
	}

	if !baseNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid base layout name: %q", name)
	}

	return nil
}

// ValidateExtension validates a layout file extension such as ".xml".
func ValidateExtension(ext string) error {
	if ext == "" {
		return New(ErrCodeInvalidPath, "file extension cannot be empty")
	}
	if !strings.HasPrefix(ext, ".") {
		return New(ErrCodeInvalidPath, "file extension must start with a dot: %q", ext)
	}
	if strings.ContainsAny(ext, "/\\") || strings.Contains(ext, "..") {
		return New(ErrCodeInvalidPath, "file extension cannot contain path components: %q", ext)
	}
	return nil
}
