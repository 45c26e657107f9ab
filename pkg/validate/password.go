package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// Strength labels a password's overall quality.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Assessment is the full verdict for a single password. The error and
// suggestion slices are always non-nil so they serialize as JSON arrays.
type Assessment struct {
	Valid       bool     `json:"valid"`
	Strength    Strength `json:"strength"`
	Errors      []string `json:"errors"`
	Suggestions []string `json:"suggestions"`
}

// PasswordPolicy holds the rules a password is checked against.
// The zero value is not usable; start from DefaultPasswordPolicy.
type PasswordPolicy struct {
	// MinLength is the hard minimum; shorter passwords are invalid.
	MinLength int
	// RecommendedLength only drives a suggestion, never an error.
	RecommendedLength int
	// SpecialChars is the set counted as special characters.
	SpecialChars string
}

// DefaultPasswordPolicy returns the standard policy: 8 minimum,
// 12 recommended, common punctuation as the special set.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:         8,
		RecommendedLength: 12,
		SpecialChars:      "!@#$%^&*()_+-=[]{}|;:,.<>?",
	}
}

// AssessPassword checks candidate against the default policy.
func AssessPassword(candidate string) Assessment {
	return DefaultPasswordPolicy().Assess(candidate)
}

// Assess checks candidate against the policy and returns a full verdict.
// Errors accumulate in a fixed order (length, uppercase, lowercase, digit,
// special) so callers can present them deterministically. Lengths count
// runes, so multibyte characters count once.
func (p PasswordPolicy) Assess(candidate string) Assessment {
	result := Assessment{
		Strength:    StrengthWeak,
		Errors:      []string{},
		Suggestions: []string{},
	}

	if candidate == "" {
		result.Errors = append(result.Errors, "Password is required")
		return result
	}

	length := len([]rune(candidate))
	if length < p.MinLength {
		result.Errors = append(result.Errors, fmt.Sprintf("Password must be at least %d characters long", p.MinLength))
	} else if length < p.RecommendedLength {
		result.Suggestions = append(result.Suggestions, fmt.Sprintf("Consider using at least %d characters for better security", p.RecommendedLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(p.SpecialChars, r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		result.Errors = append(result.Errors, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		result.Errors = append(result.Errors, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		result.Errors = append(result.Errors, "Password must contain at least one digit")
	}
	if !hasSpecial {
		result.Errors = append(result.Errors, "Password must contain at least one special character")
	}

	score := 0
	if length >= p.MinLength {
		score++
	}
	if length >= p.RecommendedLength {
		score++
	}
	if hasUpper {
		score++
	}
	if hasLower {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSpecial {
		score++
	}

	switch {
	case score >= 5:
		result.Strength = StrengthStrong
	case score >= 3:
		result.Strength = StrengthMedium
	}

	result.Valid = len(result.Errors) == 0
	return result
}
