package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// AllowedContentTypes lists the document formats accepted for upload.
var AllowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/tiff":      {},
}

// ErrUnsupportedType signals an upload with a content type outside the
// accepted set.
var ErrUnsupportedType = errors.New("unsupported file type")

// Extractor pulls text out of an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, path, contentType string) (string, error)
}

// CommandExtractor shells out to poppler and tesseract. PDFs go through
// pdftotext first; when the PDF has no text layer the pages are rasterized
// with pdftoppm and OCR'd. Images go straight to tesseract.
type CommandExtractor struct {
	// PDFTextBin, PDFImageBin, and TesseractBin override the binary names,
	// mainly for tests.
	PDFTextBin   string
	PDFImageBin  string
	TesseractBin string
}

// NewCommandExtractor returns an extractor using the standard binary names.
func NewCommandExtractor() *CommandExtractor {
	return &CommandExtractor{
		PDFTextBin:   "pdftotext",
		PDFImageBin:  "pdftoppm",
		TesseractBin: "tesseract",
	}
}

// Extract dispatches on content type.
func (e *CommandExtractor) Extract(ctx context.Context, path, contentType string) (string, error) {
	switch {
	case contentType == "application/pdf":
		return e.extractPDF(ctx, path)
	case strings.HasPrefix(contentType, "image/"):
		return e.ocrImage(ctx, path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
}

func (e *CommandExtractor) extractPDF(ctx context.Context, path string) (string, error) {
	out, err := runCommand(ctx, e.PDFTextBin, "-layout", path, "-")
	if err == nil && len(strings.TrimSpace(out)) > 0 {
		return strings.TrimSpace(out), nil
	}
	if err != nil {
		logrus.WithError(err).Debug("pdftotext failed, falling back to OCR")
	}
	return e.ocrPDF(ctx, path)
}

// ocrPDF rasterizes each page at 300 DPI and runs tesseract over the result.
func (e *CommandExtractor) ocrPDF(ctx context.Context, path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "lease-ocr-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	if _, err := runCommand(ctx, e.PDFImageBin, "-png", "-r", "300", path, prefix); err != nil {
		return "", fmt.Errorf("pdf rasterize failed: %w", err)
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", errors.New("pdf produced no pages")
	}
	sort.Strings(pages)

	var builder strings.Builder
	for i, page := range pages {
		text, err := e.ocrImage(ctx, page)
		if err != nil {
			return "", fmt.Errorf("page %d OCR failed: %w", i+1, err)
		}
		fmt.Fprintf(&builder, "\n--- Page %d ---\n%s\n", i+1, text)
	}
	return strings.TrimSpace(builder.String()), nil
}

func (e *CommandExtractor) ocrImage(ctx context.Context, path string) (string, error) {
	// psm 6: assume a uniform block of text, the layout of a lease page
	out, err := runCommand(ctx, e.TesseractBin, path, "stdout", "--psm", "6", "-l", "eng")
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func runCommand(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %s: %w", bin, msg, err)
		}
		return "", fmt.Errorf("%s: %w", bin, err)
	}
	return stdout.String(), nil
}
