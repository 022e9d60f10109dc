package validation

import (
	"regexp"
	"strings"
)

const (
	nameMinLength        = 1
	nameMaxLength        = 255
	descriptionMaxLength = 1000
)

// Validator provides common validation utilities shared by the entity
// validators.
type Validator struct {
	colorRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		colorRegex: regexp.MustCompile(`^#[0-9a-fA-F]{6}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidNameLength checks if a name length is within limits
func (v *Validator) IsValidNameLength(name string) bool {
	length := len(strings.TrimSpace(name))
	return length >= nameMinLength && length <= nameMaxLength
}

// IsValidDescriptionLength checks if a free-text description fits
func (v *Validator) IsValidDescriptionLength(s string) bool {
	return len(s) <= descriptionMaxLength
}

// IsValidHexColor checks for a #rrggbb color string
func (v *Validator) IsValidHexColor(color string) bool {
	return v.colorRegex.MatchString(color)
}

// IsValidTimeRange checks that a closed range ends strictly after it starts.
// A nil end means the entry is still running, which is always valid.
func (v *Validator) IsValidTimeRange(startMillis int64, endMillis *int64) bool {
	if endMillis == nil {
		return true
	}
	return *endMillis > startMillis
}

// TrimString trims whitespace and returns the cleaned string
func (v *Validator) TrimString(s string) string {
	return strings.TrimSpace(s)
}
