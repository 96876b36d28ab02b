package analysis

import (
	"context"
	"strings"
	"testing"

	"tenantrights-ai/backend/internal/ai"
)

// scriptedAssistant returns canned responses keyed on prompt content.
type scriptedAssistant struct {
	clauseJSON string
	rightsJSON string
	summary    string
	calls      int
}

func (s *scriptedAssistant) Enabled() bool { return true }

func (s *scriptedAssistant) Complete(_ context.Context, req ai.Request) (string, error) {
	s.calls++
	switch {
	case strings.Contains(req.Prompt, "unfair, illegal, or problematic"):
		return s.clauseJSON, nil
	case strings.Contains(req.Prompt, "rights and obligations"):
		return s.rightsJSON, nil
	default:
		return s.summary, nil
	}
}

func TestAnalyzeDocumentRendersPayloadUnchanged(t *testing.T) {
	assistant := &scriptedAssistant{
		clauseJSON: "```json\n" + `{"clauses": [
			{"clause_text": "No notice entry", "issue": "Privacy violation", "severity": "high", "explanation": "Notice is required", "recommendation": "Push back"},
			{"clause_text": "Non-refundable deposit", "issue": "Deposit law violation", "severity": "HIGH", "explanation": "Deposits must be refundable", "recommendation": "Negotiate"}
		]}` + "\n```",
		rightsJSON: `{"rights": [{"title": "Quiet enjoyment", "description": "Right to peaceful use", "importance": "high"}]}`,
		summary:    "A short plain summary.",
	}

	analyzer := NewAnalyzer(assistant)
	result, err := analyzer.AnalyzeDocument(context.Background(), "lease text", "en")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(result.UnfairClauses) != 2 {
		t.Fatalf("expected 2 clauses got %d", len(result.UnfairClauses))
	}
	if result.UnfairClauses[0].ClauseText != "No notice entry" {
		t.Fatalf("clause order changed: %s", result.UnfairClauses[0].ClauseText)
	}
	if result.UnfairClauses[1].Severity != SeverityHigh {
		t.Fatalf("severity not normalized: %s", result.UnfairClauses[1].Severity)
	}
	if len(result.TenantRights) != 1 || result.TenantRights[0].Title != "Quiet enjoyment" {
		t.Fatalf("unexpected rights: %+v", result.TenantRights)
	}
	if result.PlainEnglishSummary != "A short plain summary." {
		t.Fatalf("unexpected summary: %s", result.PlainEnglishSummary)
	}
	// two high clauses: 100 - 40
	if result.OverallScore != 60 {
		t.Fatalf("expected score 60 got %.1f", result.OverallScore)
	}
	if !strings.Contains(result.Recommendations[0], "URGENT") {
		t.Fatalf("expected urgent recommendation, got %v", result.Recommendations)
	}
}

func TestAnalyzeDocumentDisabledReturnsDemo(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	result, err := analyzer.AnalyzeDocument(context.Background(), "lease text", "en")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.UnfairClauses) != 1 || result.UnfairClauses[0].ClauseText != "Demo clause analysis" {
		t.Fatalf("expected demo clause, got %+v", result.UnfairClauses)
	}
	if result.OverallScore != 95 {
		t.Fatalf("expected demo score 95 got %.1f", result.OverallScore)
	}
}
