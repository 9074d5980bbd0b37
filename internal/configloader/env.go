package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/changelint/pkg/config"
)

const envPrefix = "CHANGELINT_"

// envVar binds CHANGELINT_<suffix> to the config key it overrides.
type envVar struct {
	suffix string
	key    string
	usage  string
	apply  func(cfg *config.Config, value string) error
}

// envVars is ordered by suffix so the first invalid variable is reported consistently.
//
//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"COLOR", "output.color", "Colour: auto, always or never",
		func(cfg *config.Config, v string) error { cfg.Output.Color = v; return nil }},
	{"EXCLUDE", "exclude", "Comma-separated exclude globs",
		func(cfg *config.Config, v string) error { cfg.Exclude = splitList(v); return nil }},
	{"FILES", "files", "Comma-separated changelog file names",
		func(cfg *config.Config, v string) error { cfg.Files = splitList(v); return nil }},
	{"FORMAT", "output.format", "Output format: short, full, json, jsonl or sarif",
		func(cfg *config.Config, v string) error { cfg.Output.Format = config.OutputFormat(v); return nil }},
	{"IGNORE", "ignore", "Comma-separated rule codes or names to skip",
		func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil }},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		func(cfg *config.Config, v string) error { return parseInto(&cfg.Jobs, v, strconv.Atoi) }},
	{"RULE_FORMAT", "output.rule_format", "Rule identifiers: id, name or combined",
		func(cfg *config.Config, v string) error { cfg.Output.RuleFormat = config.RuleFormat(v); return nil }},
	{"SELECT", "select", "Comma-separated rule codes or names to run",
		func(cfg *config.Config, v string) error { cfg.Select = splitList(v); return nil }},
	{"STRICT", "strict", "Fail on warnings: true or false",
		func(cfg *config.Config, v string) error { return parseInto(&cfg.Strict, v, strconv.ParseBool) }},
	{"SUMMARY", "output.summary", "Print summary tables: true or false",
		func(cfg *config.Config, v string) error { return parseInto(&cfg.Output.Summary, v, strconv.ParseBool) }},
}

// LoadFromEnv overlays every non-empty CHANGELINT_* variable onto cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, ev := range envVars {
		name := envPrefix + ev.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s=%q: %w", name, value, err)
		}
	}
	return nil
}

func parseInto[T any](dst *T, value string, parse func(string) (T, error)) error {
	parsed, err := parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("cannot parse %q", value)
	}
	*dst = parsed
	return nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the variable that overrides a config key, or "".
func GetEnvVarName(key string) string {
	for _, ev := range envVars {
		if ev.key == key {
			return envPrefix + ev.suffix
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its help text.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		vars[envPrefix+ev.suffix] = ev.usage
	}
	return vars
}
