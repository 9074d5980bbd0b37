package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/changelint/pkg/analysis"
)

// FormatSummaryOneLine formats report totals as a single line.
// Example: "3 issues (2 errors, 1 warning) in 2 files".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	var builder strings.Builder

	if !totals.HasIssues() {
		builder.WriteString(s.Success.Render("No issues found"))
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(totals.Files, "file"))))
	} else {
		var severityParts []string
		if totals.Errors > 0 {
			severityParts = append(severityParts, s.Error.Render(plural(totals.Errors, "error")))
		}
		if totals.Warnings > 0 {
			severityParts = append(severityParts, s.Warning.Render(plural(totals.Warnings, "warning")))
		}

		builder.WriteString(plural(totals.Issues, "issue"))
		if len(severityParts) > 0 {
			builder.WriteString(" (" + strings.Join(severityParts, ", ") + ")")
		}
		builder.WriteString(" in " + plural(totals.FilesWithIssues, "file"))
	}

	if totals.FilesErrored > 0 {
		builder.WriteString(", " + s.Failure.Render(plural(totals.FilesErrored, "file")+" failed"))
	}

	return builder.String() + "\n"
}

func plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}
