package config

import (
	"fmt"
	"net/url"
	"strings"

	verrors "github.com/JonSteinn/vspy/internal/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		fmt.Fprintf(&sb, "  %s: %s\n", err.Field, err.Message)
	}
	return sb.String()
}

// Is lets callers match ValidationErrors against errors.ErrValidation.
func (e ValidationErrors) Is(target error) bool {
	return target == verrors.ErrValidation
}

// Validate checks the loaded configuration for values the client and
// scheduler cannot work with.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Workers < 0 {
		errs = append(errs, ValidationError{Field: "workers", Message: "must not be negative"})
	}
	if cfg.HTTP.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "http.timeout", Message: "must be positive"})
	}
	if cfg.HTTP.Retries < 0 {
		errs = append(errs, ValidationError{Field: "http.retries", Message: "must not be negative"})
	}
	if cfg.HTTP.RetryBackoff < 0 {
		errs = append(errs, ValidationError{Field: "http.retryBackoff", Message: "must not be negative"})
	}
	if cfg.HTTP.MaxConcurrent < 0 {
		errs = append(errs, ValidationError{Field: "http.maxConcurrent", Message: "must not be negative"})
	}

	if msg := checkURL(cfg.Sources.PyPI); msg != "" {
		errs = append(errs, ValidationError{Field: "sources.pypi", Message: msg})
	}
	if msg := checkURL(cfg.Sources.Downloads); msg != "" {
		errs = append(errs, ValidationError{Field: "sources.downloads", Message: msg})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "must not be empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "must be a valid URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must be an http or https URL"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}
