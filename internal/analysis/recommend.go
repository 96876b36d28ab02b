package analysis

import "tenantrights-ai/backend/internal/lang"

// BuildRecommendations derives the actionable advice list from the flagged
// clauses: an urgent warning when any high-severity clause exists, a
// negotiation prompt when three or more clauses were found, and a fixed set of
// general tips. A clean lease gets the single standard line.
func BuildRecommendations(clauses []ClauseAnalysis, language string) []string {
	set := lang.Recommendations(language)

	if len(clauses) == 0 {
		return []string{set.Standard}
	}

	hasHigh := false
	for _, clause := range clauses {
		if clause.Severity == SeverityHigh {
			hasHigh = true
			break
		}
	}

	var recommendations []string
	if hasHigh {
		recommendations = append(recommendations, set.Urgent)
	}
	if len(clauses) >= 3 {
		recommendations = append(recommendations, set.Multiple)
	}
	recommendations = append(recommendations, set.General...)
	return recommendations
}
