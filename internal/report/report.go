package report

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tenantrights-ai/backend/internal/store"
)

// Formats accepted by Export.
const (
	FormatPDF  = "pdf"
	FormatText = "text"
)

// Export is a rendered report ready to be served as a download.
type Export struct {
	Content     []byte
	ContentType string
	Filename    string
}

// pdfRender produces the PDF bytes; tests swap it out to drive the fallback.
var pdfRender = renderPDF

// Build renders an analysis report in the requested format. PDF rendering
// falls back to plain text when the PDF backend fails, so the caller always
// gets the full report content.
func Build(doc *store.Document, format string) (Export, error) {
	switch format {
	case FormatPDF, "":
		content, err := pdfRender(doc)
		if err != nil {
			logrus.WithError(err).WithField("document_id", doc.ID).Warn("pdf render failed, serving text report")
			return textExport(doc), nil
		}
		return Export{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("lease-analysis-%d.pdf", doc.ID),
		}, nil
	case FormatText:
		return textExport(doc), nil
	default:
		return Export{}, fmt.Errorf("unsupported report format %q", format)
	}
}

func textExport(doc *store.Document) Export {
	return Export{
		Content:     []byte(renderText(doc)),
		ContentType: "text/plain; charset=utf-8",
		Filename:    fmt.Sprintf("lease-analysis-%d.txt", doc.ID),
	}
}

// severityColor maps a clause severity to its badge color.
func severityColor(severity string) (r, g, b int) {
	switch severity {
	case "high":
		return 220, 53, 69
	case "medium":
		return 255, 193, 7
	default:
		return 13, 110, 253
	}
}
