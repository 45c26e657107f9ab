// Package account implements user registration on top of the pure
// validators. It is the only error-returning path in the system: the
// validators report judgments as data, while registration rejects bad input
// with a typed error the API layer can translate.
package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/veridian-dev/veridian/pkg/schema"
	"github.com/veridian-dev/veridian/pkg/validate"
)

// ValidationError reports which registration field was rejected and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Limits bounds the registration input. The zero value is not usable;
// start from DefaultLimits.
type Limits struct {
	MinNameLength int
	MinAge        int
	MaxAge        int
}

// DefaultLimits returns the standard registration bounds.
func DefaultLimits() Limits {
	return Limits{MinNameLength: 2, MinAge: 0, MaxAge: 150}
}

// Service registers users into a Registry.
type Service struct {
	registry *Registry
	emails   *validate.EmailValidator
	limits   Limits
	now      func() time.Time
}

// NewService wires a registration service. A nil registry gets a fresh
// in-memory one.
func NewService(registry *Registry, emails *validate.EmailValidator, limits Limits) *Service {
	if registry == nil {
		registry = NewRegistry()
	}
	if emails == nil {
		emails = validate.NewEmailValidator(validate.DefaultEmailLimits())
	}
	return &Service{
		registry: registry,
		emails:   emails,
		limits:   limits,
		now:      time.Now,
	}
}

// Register validates the input and stores a new user record.
// It returns a *ValidationError for rejected input.
func (s *Service) Register(name, email string, age int) (schema.UserRecord, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < s.limits.MinNameLength {
		return schema.UserRecord{}, &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Name must be at least %d characters", s.limits.MinNameLength),
		}
	}
	if !s.emails.Validate(email) {
		return schema.UserRecord{}, &ValidationError{
			Field:   "email",
			Message: "Invalid email format",
		}
	}
	if age < s.limits.MinAge || age > s.limits.MaxAge {
		return schema.UserRecord{}, &ValidationError{
			Field:   "age",
			Message: "Invalid age",
		}
	}

	now := s.now().UTC()
	user := schema.UserRecord{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Age:         age,
		CreatedAt:   now,
		UpdatedAt:   now,
		Active:      true,
		Role:        "user",
		Permissions: []string{"read"},
		Profile:     schema.DefaultProfile(),
	}

	if err := s.registry.Create(user); err != nil {
		return schema.UserRecord{}, err
	}
	return user, nil
}

// Get returns a registered user by ID.
func (s *Service) Get(id string) (schema.UserRecord, error) {
	return s.registry.Get(id)
}

// List returns all registered users.
func (s *Service) List() ([]schema.UserRecord, error) {
	return s.registry.List()
}

// Delete removes a registered user by ID.
func (s *Service) Delete(id string) error {
	return s.registry.Delete(id)
}
