package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tenantrights-ai/backend/internal/store"
)

// renderPDF lays the analysis out as a paginated A4 document. The renderer
// recovers from panics in the PDF backend so Build can fall back to text.
func renderPDF(doc *store.Document) (content []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf renderer panic: %v", rec)
		}
	}()

	result := doc.Analysis()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Lease Analysis Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Document: %s", doc.Filename)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", doc.CreatedAt.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Fairness Score: %.0f/100", result.OverallScore), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if result.PlainEnglishSummary != "" {
		sectionHeader(pdf, "Summary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(result.PlainEnglishSummary), "", "L", false)
		pdf.Ln(3)
	}

	if len(result.UnfairClauses) > 0 {
		sectionHeader(pdf, fmt.Sprintf("Flagged Clauses (%d)", len(result.UnfairClauses)))
		for i, clause := range result.UnfairClauses {
			r, g, b := severityColor(clause.Severity)
			pdf.SetFillColor(r, g, b)
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(24, 6, strings.ToUpper(clause.Severity), "", 0, "C", true, 0, "")
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 6, tr(fmt.Sprintf("  %d. %s", i+1, clause.Issue)), "", 1, "L", false, 0, "")

			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("\"%s\"", clause.ClauseText)), "", "L", false)
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 5, tr(clause.Explanation), "", "L", false)
			if clause.Recommendation != "" {
				pdf.MultiCell(0, 5, tr(fmt.Sprintf("Recommendation: %s", clause.Recommendation)), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(1)
	}

	if len(result.TenantRights) > 0 {
		sectionHeader(pdf, "Your Rights")
		for _, right := range result.TenantRights {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(0, 6, tr(right.Title), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(0, 5, tr(right.Description), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(2)
	}

	if len(result.Recommendations) > 0 {
		sectionHeader(pdf, "Recommendations")
		pdf.SetFont("Helvetica", "", 9)
		for _, rec := range result.Recommendations {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("- %s", rec)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}
