// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	x509client "github.com/H0llyW00dzZ/x509-client/src/x509/client"
)

// EnvConfigFile names the environment variable consulted when no path is given.
const EnvConfigFile = "X509_CLIENT_CONFIG_FILE"

// Decoder backends selectable by name.
const (
	BackendX509 = "x509" // crypto/x509 certificates
	BackendASN1 = "asn1" // structural ASN.1 view
	BackendRaw  = "raw"  // undecoded payload bytes
)

// Default values applied before a file is read.
const (
	DefaultBackend        = BackendX509
	DefaultTimeoutSeconds = 10
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Client holds the settings of a certificate client.
type Client struct {
	// Strict: Refuse unknown formats and never fall back to another decoder
	Strict bool `json:"strict" yaml:"strict"`
	// AllowFileScheme: Permit file:// origins
	AllowFileScheme bool `json:"allowFileScheme" yaml:"allowFileScheme"`
	// MaxBytes: Network payload ceiling in bytes, 0 means unlimited
	MaxBytes int64 `json:"maxBytes" yaml:"maxBytes" validate:"gte=0"`
	// Backend: Decoder backend name
	Backend string `json:"backend" yaml:"backend" validate:"required,backend"`
	// TimeoutSeconds: HTTP request timeout in seconds, 0 disables it
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds" validate:"gte=0,lte=3600"`
	// UserAgent: Custom User-Agent header
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty" validate:"omitempty,printascii"`
}

// Config represents the configuration file structure.
type Config struct {
	Client Client `json:"client" yaml:"client"`
}

// ValidationError describes one rejected configuration field.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their file key rather than the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("backend", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case BackendX509, BackendASN1, BackendRaw:
			return true
		}
		return false
	})

	return v
}

// Default returns a configuration holding only default values.
func Default() *Config {
	config := &Config{}
	config.Client.Backend = DefaultBackend
	config.Client.TimeoutSeconds = DefaultTimeoutSeconds
	return config
}

// Load reads configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Read or parse failure, or [ErrInvalidConfig] wrapping one
//     [*ValidationError] per rejected field
//
// Configuration Priority:
//  1. Default values are set
//  2. X509_CLIENT_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if a path is known)
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	errs := make([]error, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errs = append(errs, &ValidationError{
			Field:   fe.Namespace(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}

	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// ClientConfig converts the client section into [x509client.Config].
// Logger, Metrics, Version and HTTPClient are left for the caller.
func (c *Config) ClientConfig() x509client.Config {
	return x509client.Config{
		Strict:          c.Client.Strict,
		AllowFileScheme: c.Client.AllowFileScheme,
		MaxBytes:        c.Client.MaxBytes,
		Timeout:         time.Duration(c.Client.TimeoutSeconds) * time.Second,
		UserAgent:       c.Client.UserAgent,
	}
}

// message provides human-readable error messages for validation failures.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "backend":
		return fmt.Sprintf("must be one of: %s, %s, %s", BackendX509, BackendASN1, BackendRaw)
	case "printascii":
		return "must contain only printable ASCII characters"
	default:
		return fmt.Sprintf("validation failed for tag '%s'", fe.Tag())
	}
}

// detectConfigFormat determines the configuration file format based on file extension.
// Extension matching is case-insensitive; anything other than .yaml or .yml is JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}
