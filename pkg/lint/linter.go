package lint

import (
	"cmp"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/changelint/pkg/changelog"
)

// Linter runs a catalog's rules against parsed documents.
// A Linter holds no per-run state and is safe for concurrent use.
type Linter struct {
	catalog *Catalog
	jobs    int
}

// LinterOption configures a Linter.
type LinterOption func(*Linter)

// WithJobs evaluates up to n rules concurrently. Values below 2 run sequentially;
// a negative value uses GOMAXPROCS.
func WithJobs(n int) LinterOption {
	return func(l *Linter) {
		if n < 0 {
			n = runtime.GOMAXPROCS(0)
		}
		l.jobs = n
	}
}

// NewLinter creates a Linter over the given catalog.
func NewLinter(catalog *Catalog, opts ...LinterOption) *Linter {
	linter := &Linter{catalog: catalog, jobs: 1}
	for _, opt := range opts {
		opt(linter)
	}
	return linter
}

// Catalog returns the linter's rule catalog.
func (l *Linter) Catalog() *Catalog {
	return l.catalog
}

// Run resolves the selection and evaluates the effective rules once each.
// An unknown rule fails before any rule runs.
func (l *Linter) Run(doc *changelog.Document, sel Selection) ([]Diagnostic, error) {
	rules, err := l.catalog.Resolve(sel)
	if err != nil {
		return nil, err
	}
	return l.Evaluate(doc, rules), nil
}

// Evaluate applies rules to doc and returns diagnostics sorted by span start, then code.
// The result is identical whether rules run sequentially or concurrently.
func (l *Linter) Evaluate(doc *changelog.Document, rules []Rule) []Diagnostic {
	ruleCtx := NewRuleContext(doc)
	results := make([][]Diagnostic, len(rules))

	if l.jobs > 1 && len(rules) > 1 {
		var group errgroup.Group
		group.SetLimit(l.jobs)
		for idx, rule := range rules {
			group.Go(func() error {
				results[idx] = applyRule(rule, ruleCtx)
				return nil
			})
		}
		_ = group.Wait() // rules never return errors
	} else {
		for idx, rule := range rules {
			results[idx] = applyRule(rule, ruleCtx)
		}
	}

	diags := slices.Concat(results...)
	SortDiagnostics(diags)
	return diags
}

// applyRule runs one rule and fills attribution the rule left blank.
func applyRule(rule Rule, ruleCtx *RuleContext) []Diagnostic {
	diags := rule.Apply(ruleCtx)
	for idx := range diags {
		if diags[idx].RuleID == "" {
			diags[idx].RuleID = rule.ID()
		}
		if diags[idx].RuleName == "" {
			diags[idx].RuleName = rule.Name()
		}
		if diags[idx].Severity == "" {
			diags[idx].Severity = rule.DefaultSeverity()
		}
	}
	return diags
}

// SortDiagnostics orders diagnostics by span start, then rule ID.
// Ties keep their relative order.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Span.Start, b.Span.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleID, b.RuleID)
	})
}
