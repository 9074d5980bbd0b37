package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.E001.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Err is the underlying cause, such as a *lint.UnknownRuleError.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap allows errors.Is(err, ErrInvalidConfig) and matching the cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Err}
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every validation error, or returns nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for idx := range r.Errors {
		errs = append(errs, &r.Errors[idx])
	}
	return errors.Join(errs...)
}

// Validate checks a configuration for errors and warnings. Rule codes and
// names are checked against catalog; a nil catalog skips those checks.
func Validate(cfg *config.Config, catalog *lint.Catalog) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateOutput(cfg, result)

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)", nil)
	}

	for _, ruleID := range sortedKeys(cfg.Rules) {
		ruleCfg := cfg.Rules[ruleID]
		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.addError("rules."+ruleID+".severity", *ruleCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning", *ruleCfg.Severity), nil)
		}
	}

	if catalog != nil {
		validateRuleKeys(cfg, catalog, result)
	}

	validateGlobs("exclude", cfg.Exclude, result)
	validateGlobs("files", cfg.Files, result)

	return result
}

func validateOutput(cfg *config.Config, result *ValidationResult) {
	if cfg.Output.Format != "" && !cfg.Output.Format.IsValid() {
		result.addError("output.format", cfg.Output.Format,
			fmt.Sprintf("invalid format %q; must be one of: short, full, json, jsonl, sarif", cfg.Output.Format), nil)
	}
	if cfg.Output.RuleFormat != "" && !cfg.Output.RuleFormat.IsValid() {
		result.addError("output.rule_format", cfg.Output.RuleFormat,
			fmt.Sprintf("invalid rule format %q; must be one of: id, name, combined", cfg.Output.RuleFormat), nil)
	}
	switch cfg.Output.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		result.addError("output.color", cfg.Output.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Output.Color), nil)
	}
}

// validateRuleKeys rejects codes or names the catalog does not know.
func validateRuleKeys(cfg *config.Config, catalog *lint.Catalog, result *ValidationResult) {
	check := func(field string, key string) {
		if _, ok := catalog.Get(key); ok {
			return
		}
		cause := &lint.UnknownRuleError{Code: key}
		result.addError(field, key, cause.Error(), cause)
	}

	for idx, key := range cfg.Select {
		check(fmt.Sprintf("select[%d]", idx), key)
	}
	for idx, key := range cfg.Ignore {
		check(fmt.Sprintf("ignore[%d]", idx), key)
	}
	for _, key := range sortedKeys(cfg.Rules) {
		check("rules."+key, key)
	}

	ignored := make(map[string]bool, len(cfg.Ignore))
	for _, key := range cfg.Ignore {
		if rule, ok := catalog.Get(key); ok {
			ignored[rule.ID()] = true
		}
	}
	for idx, key := range cfg.Select {
		if rule, ok := catalog.Get(key); ok && ignored[rule.ID()] {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("select[%d]", idx),
				Value:   key,
				Message: fmt.Sprintf("rule %s is both selected and ignored; it will not run", rule.ID()),
			})
		}
	}
}

// validateGlobs checks that patterns are valid globs.
func validateGlobs(field string, patterns []string, result *ValidationResult) {
	for idx, pattern := range patterns {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("%s[%d]", field, idx), pattern,
				fmt.Sprintf("invalid glob pattern: %v", err), err)
		}
	}
}

func (r *ValidationResult) addError(field string, value any, message string, cause error) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message, Err: cause})
}

// ValidateWithFile validates a single file's configuration, without catalog
// checks, and records the file path in every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg, nil)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
