package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"tenantrights-ai/backend/internal/analysis"
	"tenantrights-ai/backend/internal/store"
)

func sampleDocument() *store.Document {
	doc := &store.Document{
		Filename:  "lease.pdf",
		CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	doc.ID = 7
	doc.SetAnalysis(analysis.DocumentAnalysis{
		UnfairClauses: []analysis.ClauseAnalysis{
			{
				ClauseText:     "Tenant waives all rights to sue the landlord.",
				Issue:          "Waiver of legal rights",
				Severity:       analysis.SeverityHigh,
				Explanation:    "Blanket waivers of the right to sue are unenforceable in most jurisdictions.",
				Recommendation: "Ask for this clause to be removed.",
			},
			{
				ClauseText:     "Landlord may enter at any time.",
				Issue:          "Unlimited entry",
				Severity:       analysis.SeverityMedium,
				Explanation:    "Entry typically requires advance notice.",
				Recommendation: "Request a 24-hour notice requirement.",
			},
		},
		PlainEnglishSummary: "This lease has two concerning clauses.",
		TenantRights: []analysis.TenantRight{
			{Title: "Right to habitable housing", Description: "The unit must be safe and livable.", Importance: "high"},
		},
		Recommendations: []string{"Document everything in writing."},
		OverallScore:    70,
	})
	return doc
}

func TestSeverityColors(t *testing.T) {
	tests := []struct {
		severity string
		r, g, b  int
	}{
		{"high", 220, 53, 69},
		{"medium", 255, 193, 7},
		{"low", 13, 110, 253},
		{"unknown", 13, 110, 253},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			r, g, b := severityColor(tt.severity)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Fatalf("expected (%d,%d,%d) got (%d,%d,%d)", tt.r, tt.g, tt.b, r, g, b)
			}
		})
	}
}

func TestRenderTextContainsAllSections(t *testing.T) {
	text := renderText(sampleDocument())

	for _, want := range []string{
		"Fairness Score: 70/100",
		"This lease has two concerning clauses.",
		"[HIGH] Waiver of legal rights",
		"[MEDIUM] Unlimited entry",
		"Right to habitable housing",
		"Document everything in writing.",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected text report to contain %q, got:\n%s", want, text)
		}
	}
}

func TestBuildPDF(t *testing.T) {
	export, err := Build(sampleDocument(), FormatPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.ContentType != "application/pdf" {
		t.Fatalf("expected application/pdf got %s", export.ContentType)
	}
	if !bytes.HasPrefix(export.Content, []byte("%PDF")) {
		t.Fatalf("expected PDF magic bytes, got %q", export.Content[:8])
	}
	if export.Filename != "lease-analysis-7.pdf" {
		t.Fatalf("unexpected filename %s", export.Filename)
	}
}

func TestBuildText(t *testing.T) {
	export, err := Build(sampleDocument(), FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %s", export.ContentType)
	}
	if !strings.Contains(string(export.Content), "Fairness Score: 70/100") {
		t.Fatalf("expected score in text export")
	}
}

func TestBuildFallsBackToTextWhenPDFFails(t *testing.T) {
	orig := pdfRender
	pdfRender = func(doc *store.Document) ([]byte, error) {
		return nil, errors.New("font table corrupted")
	}
	defer func() { pdfRender = orig }()

	doc := sampleDocument()
	export, err := Build(doc, FormatPDF)
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}
	if export.ContentType != "text/plain; charset=utf-8" {
		t.Fatalf("expected text fallback content type, got %s", export.ContentType)
	}
	if export.Filename != "lease-analysis-7.txt" {
		t.Fatalf("unexpected fallback filename %s", export.Filename)
	}
	if string(export.Content) != renderText(doc) {
		t.Fatalf("fallback lost report content")
	}
	for _, want := range []string{
		"[HIGH] Waiver of legal rights",
		"Right to habitable housing",
		"Document everything in writing.",
	} {
		if !strings.Contains(string(export.Content), want) {
			t.Fatalf("expected fallback to contain %q", want)
		}
	}
}

func TestBuildRejectsUnknownFormat(t *testing.T) {
	if _, err := Build(sampleDocument(), "docx"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
