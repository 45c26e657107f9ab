package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessPassword_Empty(t *testing.T) {
	result := AssessPassword("")

	assert.False(t, result.Valid)
	assert.Equal(t, StrengthWeak, result.Strength)
	assert.Equal(t, []string{"Password is required"}, result.Errors)
	assert.Empty(t, result.Suggestions)
}

func TestAssessPassword_Strong(t *testing.T) {
	result := AssessPassword("StrongPassword123!")

	assert.True(t, result.Valid)
	assert.Equal(t, StrengthStrong, result.Strength)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Suggestions)
}

func TestAssessPassword_MissingSpecial(t *testing.T) {
	// 11 characters, three classes present, no special character.
	result := AssessPassword("Password123")

	assert.False(t, result.Valid)
	assert.Equal(t, StrengthMedium, result.Strength)
	assert.Equal(t, []string{"Password must contain at least one special character"}, result.Errors)
	assert.Equal(t, []string{"Consider using at least 12 characters for better security"}, result.Suggestions)
}

func TestAssessPassword_ErrorOrder(t *testing.T) {
	// Short, no upper, no digit, no special: errors must come out in rule order.
	result := AssessPassword("abc")

	require.Equal(t, []string{
		"Password must be at least 8 characters long",
		"Password must contain at least one uppercase letter",
		"Password must contain at least one digit",
		"Password must contain at least one special character",
	}, result.Errors)
	assert.False(t, result.Valid)
	assert.Equal(t, StrengthWeak, result.Strength)
	assert.Empty(t, result.Suggestions, "suggestion only applies at or above the minimum length")
}

func TestAssessPassword_SuggestionBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		suggests bool
	}{
		{"7 chars", "Abc123!", false},
		{"8 chars", "Abc123!x", true},
		{"11 chars", "Abc123!defg", true},
		{"12 chars", "Abc123!defgh", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AssessPassword(tt.input)
			if tt.suggests {
				assert.Equal(t, []string{"Consider using at least 12 characters for better security"}, result.Suggestions)
			} else {
				assert.Empty(t, result.Suggestions)
			}
		})
	}
}

func TestAssessPassword_SuggestionIndependentOfErrors(t *testing.T) {
	// 9 characters but missing digits and specials: both errors and the
	// length suggestion are present.
	result := AssessPassword("Abcdefghi")

	assert.False(t, result.Valid)
	assert.Equal(t, []string{"Consider using at least 12 characters for better security"}, result.Suggestions)
	assert.Len(t, result.Errors, 2)
}

func TestAssessPassword_StrengthLadder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Strength
	}{
		{"lowercase only, short", "abc", StrengthWeak},
		{"lower and digits, 8 chars", "abcd1234", StrengthMedium},
		{"four classes, 8 chars", "Abcd123!", StrengthStrong},
		{"four classes, 12 chars", "Abcdefgh123!", StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessPassword(tt.input).Strength)
		})
	}
}

func TestAssessPassword_RuneCounting(t *testing.T) {
	// Eight multibyte runes plus required classes; byte length would be
	// far larger, rune length is what counts.
	result := AssessPassword("Пароль1!")

	for _, e := range result.Errors {
		assert.NotEqual(t, "Password must be at least 8 characters long", e)
	}
}

func TestPasswordPolicy_CustomLengths(t *testing.T) {
	policy := DefaultPasswordPolicy()
	policy.MinLength = 4
	policy.RecommendedLength = 6

	result := policy.Assess("Ab1!")
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"Consider using at least 6 characters for better security"}, result.Suggestions)
}

func TestPasswordPolicy_MessagesUseConfiguredLengths(t *testing.T) {
	policy := DefaultPasswordPolicy()
	policy.MinLength = 10
	policy.RecommendedLength = 16

	// A raised minimum must be reflected in the error text.
	short := policy.Assess("Abc123!xy")
	assert.Contains(t, short.Errors, "Password must be at least 10 characters long")

	// Same for the recommendation once the minimum is met.
	mid := policy.Assess("Abc123!xyz12")
	assert.Equal(t, []string{"Consider using at least 16 characters for better security"}, mid.Suggestions)
}
