package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// Generation counts and person options are checked by the generator itself.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateTarget()...)
	errors = append(errors, c.validateGeneration()...)
	errors = append(errors, c.validateLoad()...)
	errors = append(errors, c.validateExport()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateTarget checks only the database settings; commands that never
// connect skip it.
func (c *Config) ValidateTarget() error {
	if errs := c.validateTarget(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateTarget() ValidationErrors {
	var errors ValidationErrors
	db := &c.Target

	switch db.Driver {
	case "sqlite":
		if db.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "target.path",
				Message: "path is required for the sqlite driver",
			})
		}
	case "mysql":
		if db.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "target.host",
				Message: "host is required",
			})
		}
		if db.Port <= 0 || db.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "target.port",
				Message: "port must be between 1 and 65535",
			})
		}
		if db.User == "" {
			errors = append(errors, ValidationError{
				Field:   "target.user",
				Message: "user is required",
			})
		}
		if db.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "target.database",
				Message: "database name is required",
			})
		}
		validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
		if !validTLS[db.TLS] {
			errors = append(errors, ValidationError{
				Field:   "target.tls",
				Message: "tls must be 'disable', 'preferred', or 'required'",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "target.driver",
			Message: "driver must be 'mysql' or 'sqlite'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "target.max_connections",
			Message: "max_connections cannot be negative",
		})
	}
	// the load lock pins one mysql connection while rows go through another
	if db.Driver == "mysql" && db.MaxConnections == 1 {
		errors = append(errors, ValidationError{
			Field:   "target.max_connections",
			Message: "max_connections must be at least 2 for mysql",
		})
	}
	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "target.max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateGeneration() ValidationErrors {
	var errors ValidationErrors

	if c.Generation.MaxAttempts < 0 {
		errors = append(errors, ValidationError{
			Field:   "generation.max_attempts",
			Message: "max_attempts cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLoad() ValidationErrors {
	var errors ValidationErrors

	if c.Load.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "load.batch_size",
			Message: "batch_size must be positive",
		})
	}
	if c.Load.DisableForeignKeyChecks && c.Target.Driver != "mysql" {
		errors = append(errors, ValidationError{
			Field:   "load.disable_foreign_key_checks",
			Message: "only supported for the mysql driver",
		})
	}
	switch c.Load.Verify {
	case "", "count", "sha256", "skip":
	default:
		errors = append(errors, ValidationError{
			Field:   "load.verify",
			Message: fmt.Sprintf("invalid verification method %q (must be count, sha256, or skip)", c.Load.Verify),
		})
	}
	if c.Load.LockTimeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "load.lock_timeout",
			Message: "lock_timeout cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateExport() ValidationErrors {
	var errors ValidationErrors

	if c.Export.Directory == "" {
		errors = append(errors, ValidationError{
			Field:   "export.directory",
			Message: "directory is required",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
