package lint

import "github.com/yaklabco/changelint/pkg/config"

// Selection chooses which rules run. Entries are rule codes or names.
type Selection struct {
	// Include lists the rules to run. Nil means the catalog defaults; a
	// non-nil empty list runs nothing.
	Include []string

	// Exclude lists rules never to run, even if included.
	Exclude []string
}

// SelectionFromConfig builds a Selection from configuration. An empty
// select list in a config file means the defaults, as if it were omitted.
func SelectionFromConfig(cfg *config.Config) Selection {
	if cfg == nil {
		return Selection{}
	}
	sel := Selection{Exclude: cfg.Ignore}
	if len(cfg.Select) > 0 {
		sel.Include = cfg.Select
	}
	return sel
}

// Resolve returns the effective rules for a selection in catalog order:
// (Include, or the defaults when Include is nil) minus Exclude. Every entry of both
// lists is validated before anything is returned.
func (c *Catalog) Resolve(sel Selection) ([]Rule, error) {
	included, err := c.lookupAll(sel.Include)
	if err != nil {
		return nil, err
	}
	excluded, err := c.lookupAll(sel.Exclude)
	if err != nil {
		return nil, err
	}

	var rules []Rule
	for _, rule := range c.rules {
		if sel.Include == nil && !rule.DefaultEnabled() {
			continue
		}
		if sel.Include != nil && !included[rule.ID()] {
			continue
		}
		if excluded[rule.ID()] {
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (c *Catalog) lookupAll(keys []string) (map[string]bool, error) {
	ids := make(map[string]bool, len(keys))
	for _, key := range keys {
		rule, ok := c.Get(key)
		if !ok {
			return nil, &UnknownRuleError{Code: key}
		}
		ids[rule.ID()] = true
	}
	return ids, nil
}

// Validate reports the first unknown rule in a selection.
func (c *Catalog) Validate(sel Selection) error {
	_, err := c.Resolve(sel)
	return err
}
