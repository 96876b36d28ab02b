package analysis

import (
	"strings"
	"testing"

	"tenantrights-ai/backend/internal/lang"
)

func TestBuildRecommendationsCleanLease(t *testing.T) {
	recs := BuildRecommendations(nil, "en")
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation got %d", len(recs))
	}
	if !strings.Contains(recs[0], "fairly standard") {
		t.Fatalf("unexpected standard recommendation: %s", recs[0])
	}
}

func TestBuildRecommendationsUrgent(t *testing.T) {
	clauses := []ClauseAnalysis{{Severity: SeverityHigh}}
	recs := BuildRecommendations(clauses, "en")
	if !strings.Contains(recs[0], "URGENT") {
		t.Fatalf("expected urgent warning first, got %s", recs[0])
	}
	// urgent + 4 general tips
	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations got %d", len(recs))
	}
}

func TestBuildRecommendationsMultiple(t *testing.T) {
	clauses := []ClauseAnalysis{
		{Severity: SeverityLow}, {Severity: SeverityLow}, {Severity: SeverityLow},
	}
	recs := BuildRecommendations(clauses, "en")
	if !strings.Contains(recs[0], "Multiple concerning clauses") {
		t.Fatalf("expected multiple-clauses warning first, got %s", recs[0])
	}
	if len(recs) != 5 {
		t.Fatalf("expected 5 recommendations got %d", len(recs))
	}
}

func TestBuildRecommendationsLocalized(t *testing.T) {
	clauses := []ClauseAnalysis{{Severity: SeverityHigh}}
	recs := BuildRecommendations(clauses, "es")
	if !strings.Contains(recs[0], "URGENTE") {
		t.Fatalf("expected spanish urgent warning, got %s", recs[0])
	}
}

func TestBuildRecommendationsUnknownLanguageFallsBack(t *testing.T) {
	recs := BuildRecommendations(nil, "xx")
	if recs[0] != lang.Recommendations("en").Standard {
		t.Fatalf("expected english fallback, got %s", recs[0])
	}
}
