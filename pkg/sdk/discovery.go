package sdk

import (
	"os"

	"github.com/veridian-dev/veridian/internal/account"
	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/schema"
	"github.com/veridian-dev/veridian/pkg/validate"
)

// New initializes a client based on the environment. When VERIDIAN_ADDR
// points at a reachable daemon the remote client is used; otherwise the
// validators run in-process. Callers receive the interface either way.
func New() (Veridian, error) {
	if remoteAddr := os.Getenv("VERIDIAN_ADDR"); remoteAddr != "" {
		client, err := Connect(remoteAddr)
		if err == nil {
			return client, nil
		}
		// Unreachable daemon falls through to embedded mode.
	}

	return NewLocal(), nil
}

// Local runs the validation components in-process, with the same contract
// as the remote client.
type Local struct {
	emails    *validate.EmailValidator
	passwords validate.PasswordPolicy
	records   *normalize.Normalizer
	accounts  *account.Service
}

// NewLocal builds an in-process client with default configuration.
func NewLocal() *Local {
	return &Local{
		emails:    validate.NewEmailValidator(validate.DefaultEmailLimits()),
		passwords: validate.DefaultPasswordPolicy(),
		records:   normalize.New(),
		accounts:  account.NewService(nil, nil, account.DefaultLimits()),
	}
}

func (l *Local) ValidateEmail(address string) (bool, error) {
	return l.emails.Validate(address), nil
}

func (l *Local) AssessPassword(candidate string) (validate.Assessment, error) {
	return l.passwords.Assess(candidate), nil
}

func (l *Local) NormalizeRecords(items []any) ([]normalize.Record, error) {
	return l.records.Normalize(items), nil
}

func (l *Local) Register(name, email string, age int) (schema.UserRecord, error) {
	return l.accounts.Register(name, email, age)
}

func (l *Local) Ping() error { return nil }

func (l *Local) Close() error { return nil }
