package analysis

import "sort"

// severityWeights are the per-clause deductions from a perfect score.
var severityWeights = map[string]float64{
	SeverityHigh:   20,
	SeverityMedium: 10,
	SeverityLow:    5,
}

// OverallScore calculates the lease fairness score (0-100, higher is better).
// A clean lease scores 85: good, but no document is perfect.
func OverallScore(clauses []ClauseAnalysis) float64 {
	if len(clauses) == 0 {
		return 85.0
	}
	total := 0.0
	for _, clause := range clauses {
		total += severityWeights[clause.Severity]
	}
	score := 100 - total
	if score < 0 {
		score = 0
	}
	return score
}

// LimitClauses orders clauses by severity (high > medium > low) and truncates
// to the given maximum. The sort is stable so clauses of equal severity keep
// their document order.
func LimitClauses(clauses []ClauseAnalysis, max int) []ClauseAnalysis {
	out := make([]ClauseAnalysis, len(clauses))
	copy(out, clauses)
	sort.SliceStable(out, func(i, j int) bool {
		return SeverityRank(out[i].Severity) > SeverityRank(out[j].Severity)
	})
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
