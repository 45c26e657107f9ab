package sdk

import (
	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/schema"
	"github.com/veridian-dev/veridian/pkg/validate"
)

// --- Functional Interfaces (Interface Segregation) ---

// EmailChecker classifies email addresses.
type EmailChecker interface {
	ValidateEmail(address string) (bool, error)
}

// PasswordChecker assesses password strength.
type PasswordChecker interface {
	AssessPassword(candidate string) (validate.Assessment, error)
}

// RecordNormalizer cleans loose records into canonical form.
type RecordNormalizer interface {
	NormalizeRecords(items []any) ([]normalize.Record, error)
}

// Registrar registers users.
type Registrar interface {
	Register(name, email string, age int) (schema.UserRecord, error)
}

// Pinger checks that the backing service is reachable.
type Pinger interface {
	Ping() error
}

// --- Composite Interface ---

// Veridian is the full client contract. Both the remote network client and
// the in-process implementation satisfy it.
type Veridian interface {
	EmailChecker
	PasswordChecker
	RecordNormalizer
	Registrar
	Pinger

	// Close releases any underlying connection. It is a no-op for the
	// in-process implementation.
	Close() error
}
