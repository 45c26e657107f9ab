// Package validate provides the pure validation components of Veridian:
// structural email validation and password strength assessment.
// All functions are total — malformed input yields a judgment, never an error.
package validate

import "strings"

// EmailLimits holds the structural bounds applied to an email address.
// The zero value is not usable; start from DefaultEmailLimits.
type EmailLimits struct {
	// MaxLocalLength bounds the part before '@'.
	MaxLocalLength int
	// MaxDomainLength bounds the part after '@'.
	MaxDomainLength int
	// MaxLabelLength bounds each dot-separated domain label.
	MaxLabelLength int
}

// DefaultEmailLimits returns the conventional RFC-derived bounds.
func DefaultEmailLimits() EmailLimits {
	return EmailLimits{
		MaxLocalLength:  64,
		MaxDomainLength: 255,
		MaxLabelLength:  63,
	}
}

// EmailValidator checks the structure of email addresses against explicit
// limits. It holds no state beyond its configuration and is safe for
// concurrent use.
type EmailValidator struct {
	limits EmailLimits
}

// NewEmailValidator builds a validator with the given limits.
func NewEmailValidator(limits EmailLimits) *EmailValidator {
	return &EmailValidator{limits: limits}
}

// Email reports whether candidate is a structurally valid email address
// under the default limits.
func Email(candidate string) bool {
	return NewEmailValidator(DefaultEmailLimits()).Validate(candidate)
}

// Validate reports whether candidate is a structurally valid email address.
// Comparison is case-insensitive and surrounding whitespace is ignored.
// This is a guardrail, not an RFC 5321 parser: it rejects the shapes that
// break downstream systems (missing '@', bare hostnames, double dots,
// oversized parts) and accepts the rest.
func (v *EmailValidator) Validate(candidate string) bool {
	addr := strings.ToLower(strings.TrimSpace(candidate))
	if addr == "" {
		return false
	}

	if !strings.Contains(addr, "@") || !strings.Contains(addr, ".") {
		return false
	}

	local, domain, ok := strings.Cut(addr, "@")
	if !ok || strings.Contains(domain, "@") {
		return false
	}

	if local == "" || len([]rune(local)) > v.limits.MaxLocalLength {
		return false
	}
	if domain == "" || len([]rune(domain)) > v.limits.MaxDomainLength {
		return false
	}

	// Double dots are invalid anywhere, local part included.
	if strings.Contains(addr, "..") {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || len([]rune(label)) > v.limits.MaxLabelLength {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}

	return true
}
