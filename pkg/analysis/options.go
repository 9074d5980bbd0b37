package analysis

import "github.com/yaklabco/changelint/pkg/config"

// Order selects how the per-rule and per-file breakdowns are sorted.
// Rows that compare equal are ordered by rule code or path.
type Order string

const (
	OrderCount    Order = "count"    // by issue count
	OrderKey      Order = "key"      // by rule code or path only
	OrderSeverity Order = "severity" // errors first, then warnings, then issues
)

// IsValid reports whether o is a known order.
func (o Order) IsValid() bool {
	return o == OrderCount || o == OrderKey || o == OrderSeverity
}

// Options configures Analyze.
type Options struct {
	// ContextLines is how many source lines, ending at the diagnostic's first
	// line, are attached to each entry. Zero attaches none.
	ContextLines int

	// Order sorts ByRule and ByFile.
	Order Order

	// Descending reverses OrderCount so the busiest rows come first.
	Descending bool

	// RuleFormat controls the Rule label of each entry.
	RuleFormat config.RuleFormat
}

// DefaultOptions sorts breakdowns busiest first and labels rules by code.
func DefaultOptions() Options {
	return Options{
		Order:      OrderCount,
		Descending: true,
		RuleFormat: config.RuleFormatID,
	}
}
