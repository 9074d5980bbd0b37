package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/changelint/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Output.Format != "" {
		result.Output.Format = override.Output.Format
	}
	if override.Output.RuleFormat != "" {
		result.Output.RuleFormat = override.Output.RuleFormat
	}
	if override.Output.Color != "" {
		result.Output.Color = override.Output.Color
	}

	// false is the zero value, so a layer can switch these on but not off.
	if override.Strict {
		result.Strict = true
	}
	if override.Output.Summary {
		result.Output.Summary = true
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Select != nil {
		result.Select = slices.Clone(override.Select)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Files != nil {
		result.Files = slices.Clone(override.Files)
	}
	if override.Exclude != nil {
		result.Exclude = slices.Clone(override.Exclude)
	}
	if override.Paths != nil {
		result.Paths = slices.Clone(override.Paths)
	}

	return result
}

// mergeRules performs deep merge of rule configurations.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		existing, ok := result[key]
		if ok && val.Severity == nil {
			val.Severity = existing.Severity
		}
		result[key] = val
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}

func sortedKeys(rules map[string]config.RuleConfig) []string {
	return slices.Sorted(maps.Keys(rules))
}
