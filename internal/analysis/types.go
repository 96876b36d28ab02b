package analysis

import "strings"

// Severity levels for flagged clauses. Importance levels for tenant rights
// share the same vocabulary.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// ClauseAnalysis describes one problematic clause found in a lease.
type ClauseAnalysis struct {
	ClauseText     string `json:"clause_text"`
	Issue          string `json:"issue"`
	Severity       string `json:"severity"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

// TenantRight describes one right or obligation extracted from the lease.
type TenantRight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Importance  string `json:"importance"`
}

// DocumentAnalysis is the full structured output for one lease document.
type DocumentAnalysis struct {
	UnfairClauses       []ClauseAnalysis `json:"unfair_clauses"`
	PlainEnglishSummary string           `json:"plain_english_summary"`
	TenantRights        []TenantRight    `json:"tenant_rights"`
	Recommendations     []string         `json:"recommendations"`
	OverallScore        float64          `json:"overall_score"`
}

// NormalizeSeverity coerces arbitrary model output into the severity
// vocabulary, defaulting to low.
func NormalizeSeverity(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// SeverityRank orders severities for sorting, highest first.
func SeverityRank(severity string) int {
	switch severity {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}
