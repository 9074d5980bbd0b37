package lint

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Catalog is the fixed, ordered set of known rules.
// It is immutable after construction and safe for concurrent use.
type Catalog struct {
	rules  []Rule
	byID   map[string]Rule
	byName map[string]Rule
}

// NewCatalog builds a catalog sorted by rule ID.
// Duplicate IDs or names are rejected.
func NewCatalog(rules ...Rule) (*Catalog, error) {
	catalog := &Catalog{
		rules:  slices.Clone(rules),
		byID:   make(map[string]Rule, len(rules)),
		byName: make(map[string]Rule, len(rules)),
	}

	for _, rule := range rules {
		if _, exists := catalog.byID[rule.ID()]; exists {
			return nil, fmt.Errorf("duplicate rule id %q", rule.ID())
		}
		if _, exists := catalog.byName[rule.Name()]; exists {
			return nil, fmt.Errorf("duplicate rule name %q", rule.Name())
		}
		catalog.byID[rule.ID()] = rule
		catalog.byName[rule.Name()] = rule
	}

	slices.SortFunc(catalog.rules, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return catalog, nil
}

// MustNewCatalog is like NewCatalog but panics on error.
// Use it for catalogs assembled from compile-time rule lists.
func MustNewCatalog(rules ...Rule) *Catalog {
	catalog, err := NewCatalog(rules...)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Get retrieves a rule by ID or name.
// IDs match case-insensitively; names match exactly.
func (c *Catalog) Get(key string) (Rule, bool) {
	if rule, ok := c.byID[strings.ToUpper(key)]; ok {
		return rule, true
	}
	rule, ok := c.byName[key]
	return rule, ok
}

// Rules returns all rules sorted by ID.
func (c *Catalog) Rules() []Rule {
	return slices.Clone(c.rules)
}

// IDs returns all rule IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.rules))
	for i, rule := range c.rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Defaults returns the default-enabled rules in catalog order.
func (c *Catalog) Defaults() []Rule {
	var rules []Rule
	for _, rule := range c.rules {
		if rule.DefaultEnabled() {
			rules = append(rules, rule)
		}
	}
	return rules
}
