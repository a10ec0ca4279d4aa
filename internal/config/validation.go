package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > maxConfiguredTimeout {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	}

	return nil
}

// Validate checks struct tags first, then the rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := lo.Map(validationErrs, func(fe validator.FieldError, _ int) string {
				return describeFieldError(fe)
			})
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timeouts := []lo.Tuple2[string, time.Duration]{
		lo.T2("read header", c.Server.ReadHeaderTimeout),
		lo.T2("write", c.Server.WriteTimeout),
		lo.T2("idle", c.Server.IdleTimeout),
		lo.T2("shutdown", c.Server.ShutdownTimeout),
	}
	for _, t := range timeouts {
		if err := ValidateTimeout(t.B, t.A); err != nil {
			return err
		}
	}

	if c.Model.Backend == BackendOpenAI {
		// OpenAI-compatible servers behind a base URL issue keys of their own shape.
		keyType := "OpenAI"
		if c.Model.OpenAIBaseURL != "" {
			keyType = "OpenAI-compatible"
		}
		if err := ValidateAPIKey(c.Model.OpenAIAPIKey, keyType); err != nil {
			return err
		}
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	field = strings.TrimPrefix(field, "config.")

	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gt":
		return fmt.Sprintf("%s is too small", field)
	case "max":
		return fmt.Sprintf("%s is too large", field)
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}
