// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/fsutil"
	"github.com/yaklabco/changelint/pkg/lint"
)

// ErrInvalidConfig marks configuration that cannot be read or does not validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config

	// Catalog resolves rule names and validates rule codes.
	// Defaults to a catalog that accepts no rules when nil.
	Catalog *lint.Catalog
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (CHANGELINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.changelint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/changelint/config.yml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: opts.ExplicitPath},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = lint.MustNewCatalog()
	}

	// Rule keys may be names such as "missing-title"; store them by code.
	normalizeRuleKeys(cfg, catalog, result)

	validation := Validate(cfg, catalog)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML (or JSON) file.
func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	result := ValidateWithFile(cfg, path)
	if !result.Valid() {
		return nil, &result.Errors[0]
	}

	return cfg, nil
}

// normalizeRuleKeys converts rule names to canonical codes in the config.
// If a rule is specified by both code and name, the code's entry wins.
func normalizeRuleKeys(cfg *config.Config, catalog *lint.Catalog, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seenKeys := make(map[string]string) // code -> original key

	for _, key := range sortedKeys(cfg.Rules) {
		ruleCfg := cfg.Rules[key]
		rule, found := catalog.Get(key)
		if !found {
			// Unknown rules are reported by validation.
			normalized[key] = ruleCfg
			continue
		}

		code := rule.ID()
		if originalKey, exists := seenKeys[code]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					originalKey, key, code, code))
			if key != code {
				continue
			}
		}

		seenKeys[code] = key
		normalized[code] = ruleCfg
	}

	cfg.Rules = normalized
}
