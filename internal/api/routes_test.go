package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubExtractor struct {
	calls int
	text  string
	err   error
}

func (s *stubExtractor) Extract(ctx context.Context, path, contentType string) (string, error) {
	s.calls++
	return s.text, s.err
}

const leaseText = "This lease agreement between the landlord and tenant covers monthly rent of $1200 for the premises at 12 Elm St, with a security deposit of $1200."

func newTestServer(t *testing.T, extractor *stubExtractor) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, err := NewServer(Config{
		DBPath:    filepath.Join(t.TempDir(), "test.db"),
		SilentDB:  true,
		DisableAI: true,
		Extractor: extractor,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func uploadRequest(t *testing.T, contentType string, size int) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="lease.pdf"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("a"), size)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.WriteField("language", "en"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload-document", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	extractor := &stubExtractor{text: leaseText}
	server := newTestServer(t, extractor)
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "application/pdf", defaultMaxUploadBytes+1))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "File too large") {
		t.Fatalf("expected size error, got %s", rec.Body.String())
	}
	if extractor.calls != 0 {
		t.Fatalf("expected no extraction for oversized upload, got %d calls", extractor.calls)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	extractor := &stubExtractor{text: leaseText}
	server := newTestServer(t, extractor)
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "application/zip", 128))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid file type") {
		t.Fatalf("expected type error, got %s", rec.Body.String())
	}
	if extractor.calls != 0 {
		t.Fatalf("expected no extraction for rejected type, got %d calls", extractor.calls)
	}
}

func TestUploadAnalyzesDocument(t *testing.T) {
	extractor := &stubExtractor{text: leaseText}
	server := newTestServer(t, extractor)
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "application/pdf", 2048))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if extractor.calls != 1 {
		t.Fatalf("expected one extraction got %d", extractor.calls)
	}

	var resp DocumentAnalysisResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DocumentID == 0 {
		t.Fatalf("expected persisted document id")
	}
	if resp.Filename != "lease.pdf" {
		t.Fatalf("expected lease.pdf got %s", resp.Filename)
	}
	if resp.Analysis.OverallScore == 0 {
		t.Fatalf("expected non-zero demo score")
	}
	if len(resp.UnfairClauses) != len(resp.Analysis.UnfairClauses) {
		t.Fatalf("expected convenience fields to mirror analysis")
	}

	// The stored row should be retrievable and complete.
	getRec := httptest.NewRecorder()
	getReq := httptest.NewRequest(http.MethodGet, "/api/documents/1", nil)
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", getRec.Code)
	}
	var doc DocumentDTO
	if err := json.Unmarshal(getRec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Status != "complete" {
		t.Fatalf("expected complete status got %s", doc.Status)
	}
}

func TestUploadExtractionFailureMarksDocumentErrored(t *testing.T) {
	extractor := &stubExtractor{text: "too short"}
	server := newTestServer(t, extractor)
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "application/pdf", 512))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}

	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/documents/1", nil))
	var doc DocumentDTO
	if err := json.Unmarshal(getRec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Status != "error" {
		t.Fatalf("expected error status got %s", doc.Status)
	}
}

func TestCommonQuestionsEndpoint(t *testing.T) {
	server := newTestServer(t, &stubExtractor{})
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/common-questions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var resp struct {
		Categories []struct {
			Category  string   `json:"category"`
			Questions []string `json:"questions"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Categories) != 5 {
		t.Fatalf("expected 5 categories got %d", len(resp.Categories))
	}
}

func TestLetterTemplatesEndpoint(t *testing.T) {
	server := newTestServer(t, &stubExtractor{})
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/letter-templates", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var resp struct {
		Templates map[string]string `json:"templates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp.Templates["repair_request"]; !ok {
		t.Fatalf("expected repair_request template, got %v", resp.Templates)
	}
}

func TestDocumentReportTextFormat(t *testing.T) {
	extractor := &stubExtractor{text: leaseText}
	server := newTestServer(t, extractor)
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "application/pdf", 512))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}

	reportRec := httptest.NewRecorder()
	router.ServeHTTP(reportRec, httptest.NewRequest(http.MethodGet, "/api/documents/1/report?format=text", nil))
	if reportRec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", reportRec.Code)
	}
	if ct := reportRec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text/plain got %s", ct)
	}
	if !strings.Contains(reportRec.Body.String(), "LEASE ANALYSIS REPORT") {
		t.Fatalf("expected report header in body")
	}
}

func TestAnalysisStatusReflectsLastEvent(t *testing.T) {
	extractor := &stubExtractor{text: leaseText}
	server := newTestServer(t, extractor)
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	// Before any upload there is nothing to report.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var idle struct {
		Active bool `json:"active"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &idle); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if idle.Active {
		t.Fatalf("expected inactive status before any upload")
	}

	uploadRec := httptest.NewRecorder()
	router.ServeHTTP(uploadRec, uploadRequest(t, "application/pdf", 512))
	if uploadRec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", uploadRec.Code, uploadRec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis/status", nil))
	var status struct {
		Active bool          `json:"active"`
		Event  AnalysisEvent `json:"event"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Active {
		t.Fatalf("expected active status after upload")
	}
	if status.Event.Type != "complete" {
		t.Fatalf("expected complete event got %s", status.Event.Type)
	}
	if status.Event.DocumentID == 0 {
		t.Fatalf("expected document id on event")
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	server := newTestServer(t, &stubExtractor{})
	router, err := server.Router()
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
