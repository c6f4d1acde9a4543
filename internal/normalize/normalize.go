// Package normalize holds the canonical forms used for storage keys and
// comparisons.
package normalize

import "strings"

// Email returns a normalized form of an email address suitable for
// storage and comparisons. Normalization currently trims surrounding
// whitespace and lower-cases the address.
func Email(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// SkillName returns the comparison key for a skill name. Two skills are the
// same skill when their keys are equal, regardless of case or padding.
func SkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
