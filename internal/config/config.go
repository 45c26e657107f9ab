// Package config loads the daemon configuration. Thresholds that were once
// ambient constants (email limits, password lengths) are explicit values
// here and flow into the validator constructors.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/veridian-dev/veridian/pkg/validate"
)

// Config is the root daemon configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	TCP       TCPConfig       `yaml:"tcp"`
	Log       LogConfig       `yaml:"log"`
	Validator ValidatorConfig `yaml:"validator"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"VERIDIAN_HTTP_HOST"        env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"VERIDIAN_HTTP_PORT"        env-default:"7102"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"VERIDIAN_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"VERIDIAN_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"VERIDIAN_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// TCPConfig holds settings for the line-protocol listener.
type TCPConfig struct {
	Port       int  `yaml:"port"        env:"VERIDIAN_PORT"        env-default:"7101"`
	DisableTLS bool `yaml:"disable_tls" env:"VERIDIAN_DISABLE_TLS" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"VERIDIAN_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"VERIDIAN_LOG_FORMAT" env-default:"text"`
}

// ValidatorConfig carries the tunable validation thresholds.
type ValidatorConfig struct {
	EmailMaxLocal     int `yaml:"email_max_local"     env:"VERIDIAN_EMAIL_MAX_LOCAL"     env-default:"64"`
	EmailMaxDomain    int `yaml:"email_max_domain"    env:"VERIDIAN_EMAIL_MAX_DOMAIN"    env-default:"255"`
	EmailMaxLabel     int `yaml:"email_max_label"     env:"VERIDIAN_EMAIL_MAX_LABEL"     env-default:"63"`
	PasswordMinLength int `yaml:"password_min_length" env:"VERIDIAN_PASSWORD_MIN_LENGTH" env-default:"8"`
	PasswordRecLength int `yaml:"password_rec_length" env:"VERIDIAN_PASSWORD_REC_LENGTH" env-default:"12"`
}

// EmailLimits converts the configured thresholds into validator limits.
func (v ValidatorConfig) EmailLimits() validate.EmailLimits {
	return validate.EmailLimits{
		MaxLocalLength:  v.EmailMaxLocal,
		MaxDomainLength: v.EmailMaxDomain,
		MaxLabelLength:  v.EmailMaxLabel,
	}
}

// PasswordPolicy converts the configured thresholds into a password policy.
// The special-character set is fixed; only lengths are tunable.
func (v ValidatorConfig) PasswordPolicy() validate.PasswordPolicy {
	policy := validate.DefaultPasswordPolicy()
	policy.MinLength = v.PasswordMinLength
	policy.RecommendedLength = v.PasswordRecLength
	return policy
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from
// VERIDIAN_CONFIG_PATH (fallback "./config.yaml"); a missing default file
// is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("VERIDIAN_CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.TCP.Port <= 0 || c.TCP.Port > 65535 {
		return fmt.Errorf("tcp port %d out of range", c.TCP.Port)
	}
	if c.Server.Port == c.TCP.Port {
		return fmt.Errorf("server and tcp ports collide on %d", c.Server.Port)
	}
	if c.Validator.EmailMaxLocal <= 0 || c.Validator.EmailMaxDomain <= 0 || c.Validator.EmailMaxLabel <= 0 {
		return fmt.Errorf("email limits must be positive")
	}
	if c.Validator.PasswordMinLength <= 0 {
		return fmt.Errorf("password min length must be positive")
	}
	if c.Validator.PasswordRecLength < c.Validator.PasswordMinLength {
		return fmt.Errorf("password recommended length %d below minimum %d",
			c.Validator.PasswordRecLength, c.Validator.PasswordMinLength)
	}
	return nil
}
