package errors

import (
	"strings"
	"unicode"
)

// MaxPresetNameLength is the maximum accepted length for a preset name.
const MaxPresetNameLength = 64

// ValidatePresetName validates a user-entered preset name.
//
// The validation rules are intentionally conservative:
//   - No empty names (after trimming whitespace)
//   - No control characters
//   - Maximum length of 64 characters
//
// Names are otherwise free-form; bracketed text such as "[Empty 3]" is
// allowed because slot occupancy is tracked explicitly, never inferred
// from the display label.
func ValidatePresetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPresetName, "preset name cannot be empty")
	}

	if len(name) > MaxPresetNameLength {
		return New(ErrCodeInvalidPresetName, "preset name too long (max %d characters)", MaxPresetNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPresetName, "preset name contains invalid control characters")
		}
	}

	return nil
}

// ValidateImagePath validates an image path reference for safety.
// It rejects paths that contain null bytes or are empty; existence and
// decodability are checked later by the raster loader.
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidImage, "image path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidImage, "image path contains a null byte")
	}
	return nil
}

// ValidateSpacing validates a grid spacing value.
// Zero is valid and means "use unit grid"; negative spacing is rejected
// because it would mirror the layout across the origin.
func ValidateSpacing(spacing float64) error {
	if spacing < 0 {
		return New(ErrCodeInvalidConfig, "spacing cannot be negative: %v", spacing)
	}
	return nil
}
