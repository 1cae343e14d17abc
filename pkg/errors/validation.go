package errors

import (
	"strings"
	"unicode"
)

// ValidateExpression performs cheap syntactic checks on a circuit expression
// before it reaches the notation parser.
//
// The validation rules are intentionally conservative:
//   - No empty expressions
//   - No control characters
//   - ASCII only (the notation grammar is ASCII)
//   - Maximum length of 512 characters
//
// Structural validation (balanced groups, known component tags) is done by
// the notation parser itself.
func ValidateExpression(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return New(ErrCodeInvalidExpression, "circuit expression cannot be empty")
	}

	if len(expr) > 512 {
		return New(ErrCodeInvalidExpression, "circuit expression too long (max 512 characters)")
	}

	for _, r := range expr {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidExpression, "circuit expression contains control characters")
		}
		if r > unicode.MaxASCII {
			return New(ErrCodeInvalidExpression, "circuit expression must be ASCII: %q", r)
		}
	}

	return nil
}

// ValidateFrequencyRange checks a logarithmic frequency sweep definition.
// Both endpoints must be positive (the grid is decade-spaced) and the sample
// count must be at least 2.
func ValidateFrequencyRange(start, end float64, count int) error {
	if start <= 0 || end <= 0 {
		return New(ErrCodeInvalidFrequency, "frequency bounds must be positive (got %g..%g)", start, end)
	}
	if end <= start {
		return New(ErrCodeInvalidFrequency, "end frequency must exceed start frequency (got %g..%g)", start, end)
	}
	if count < 2 {
		return New(ErrCodeInvalidFrequency, "frequency sweep needs at least 2 points (got %d)", count)
	}
	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}
