package errors

import (
	"strings"
	"unicode"
)

// ValidateImagePath validates a user-supplied photo path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputDir validates the directory the composite is written to.
// Unlike image paths, it may be empty (meaning the working directory).
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	return ValidateImagePath(dir)
}

// ValidateBackground checks a background colour name.
// Only the two paper colours of the polaroid frame are accepted.
func ValidateBackground(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "white", "black":
		return nil
	case "":
		return New(ErrCodeInvalidStyle, "background cannot be empty")
	default:
		return New(ErrCodeInvalidStyle, "invalid background: %q (must be one of: white, black)", name)
	}
}

// ValidateOverride validates a caller-supplied metadata value.
// Values are drawn verbatim, so they must be single-line and reasonably short.
func ValidateOverride(field, value string) error {
	const maxValueLength = 200
	if len(value) > maxValueLength {
		return New(ErrCodeInvalidInput, "%s: value too long (max %d characters)", field, maxValueLength)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s: value contains control characters", field)
		}
	}
	return nil
}
