package validation

import "unicode/utf8"

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty
func (v *Validator) IsNonEmptyString(s string) bool {
	return s != ""
}

// IsValidPriority checks if a priority value is within the allowed range
func (v *Validator) IsValidPriority(priority int) bool {
	return priority >= PriorityMin && priority <= PriorityMax
}

// IsValidDescriptionLength checks if a description meets the minimum
// length. Counted in characters, not bytes, matching the stores' CHECK
// constraints.
func (v *Validator) IsValidDescriptionLength(description string) bool {
	return utf8.RuneCountInString(description) >= DescriptionMinLength
}

// IsValidTagCount checks if a tag list is within the allowed size
func (v *Validator) IsValidTagCount(tags []string) bool {
	return len(tags) <= TagsMaxItems
}
