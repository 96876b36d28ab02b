package report

import (
	"fmt"
	"strings"

	"tenantrights-ai/backend/internal/store"
)

// renderText produces the plain-text edition of the report. It carries the
// same content as the PDF so a render fallback loses nothing.
func renderText(doc *store.Document) string {
	result := doc.Analysis()

	var b strings.Builder
	b.WriteString("LEASE ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Document: %s\n", doc.Filename)
	fmt.Fprintf(&b, "Generated: %s\n", doc.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Fairness Score: %.0f/100\n\n", result.OverallScore)

	if result.PlainEnglishSummary != "" {
		b.WriteString("SUMMARY\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		b.WriteString(result.PlainEnglishSummary + "\n\n")
	}

	if len(result.UnfairClauses) > 0 {
		fmt.Fprintf(&b, "FLAGGED CLAUSES (%d)\n", len(result.UnfairClauses))
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for i, clause := range result.UnfairClauses {
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, strings.ToUpper(clause.Severity), clause.Issue)
			fmt.Fprintf(&b, "   Clause: \"%s\"\n", clause.ClauseText)
			fmt.Fprintf(&b, "   %s\n", clause.Explanation)
			if clause.Recommendation != "" {
				fmt.Fprintf(&b, "   Recommendation: %s\n", clause.Recommendation)
			}
			b.WriteString("\n")
		}
	}

	if len(result.TenantRights) > 0 {
		b.WriteString("YOUR RIGHTS\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, right := range result.TenantRights {
			fmt.Fprintf(&b, "%s\n   %s\n\n", right.Title, right.Description)
		}
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS\n")
		b.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}
