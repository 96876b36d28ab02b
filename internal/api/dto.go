package api

import (
	"time"

	"tenantrights-ai/backend/internal/analysis"
	"tenantrights-ai/backend/internal/chat"
	"tenantrights-ai/backend/internal/letters"
	"tenantrights-ai/backend/internal/store"
)

// DocumentAnalysisResponse is the upload endpoint payload. The top-level
// clause/summary fields duplicate the nested analysis for older clients.
type DocumentAnalysisResponse struct {
	DocumentID          uint                      `json:"document_id"`
	Filename            string                    `json:"filename"`
	ExtractedText       string                    `json:"extracted_text"`
	Analysis            analysis.DocumentAnalysis `json:"analysis"`
	UnfairClauses       []analysis.ClauseAnalysis `json:"unfair_clauses"`
	PlainEnglishSummary string                    `json:"plain_english_summary"`
	TenantRights        []analysis.TenantRight    `json:"tenant_rights"`
	Recommendations     []string                  `json:"recommendations"`
	ProcessingTimeMs    int64                     `json:"processing_time_ms"`
}

// ChatRequest carries one user chat turn plus prior history.
type ChatRequest struct {
	Message     string         `json:"message" binding:"required"`
	DocumentID  *uint          `json:"document_id"`
	ChatHistory []chat.Message `json:"chat_history"`
}

// LetterRequest describes the letter-generation inputs.
type LetterRequest struct {
	LetterType     string               `json:"letter_type" binding:"required"`
	Context        string               `json:"context"`
	Language       string               `json:"language"`
	TenantInfo     letters.TenantInfo   `json:"tenant_info" binding:"required"`
	LandlordInfo   letters.LandlordInfo `json:"landlord_info" binding:"required"`
	SpecificIssues []string             `json:"specific_issues"`
}

// LetterResponse reports a generated letter.
type LetterResponse struct {
	LetterID   uint      `json:"letter_id"`
	LetterType string    `json:"letter_type"`
	Content    string    `json:"content"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExplainRequest asks for a plain-language clause explanation.
type ExplainRequest struct {
	ClauseText string `json:"clause_text" binding:"required"`
}

// DocumentDTO is the API representation of a stored document.
type DocumentDTO struct {
	ID               uint                      `json:"id"`
	Filename         string                    `json:"filename"`
	Status           string                    `json:"status"`
	StatusDetail     string                    `json:"status_detail,omitempty"`
	Language         string                    `json:"language"`
	Analysis         analysis.DocumentAnalysis `json:"analysis"`
	ArchiveURL       string                    `json:"archive_url,omitempty"`
	ProcessingTimeMs int64                     `json:"processing_time_ms"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// DocumentFromModel converts a stored document row to its DTO.
func DocumentFromModel(doc store.Document) DocumentDTO {
	return DocumentDTO{
		ID:               doc.ID,
		Filename:         doc.Filename,
		Status:           doc.Status,
		StatusDetail:     doc.StatusDetail,
		Language:         doc.Language,
		Analysis:         doc.Analysis(),
		ArchiveURL:       doc.ArchiveURL,
		ProcessingTimeMs: doc.ProcessingTimeMs,
		CreatedAt:        doc.CreatedAt,
	}
}

// LetterDTO is the API representation of a stored letter.
type LetterDTO struct {
	ID         uint      `json:"id"`
	LetterType string    `json:"letter_type"`
	Language   string    `json:"language"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// LetterFromModel converts a stored letter row to its DTO.
func LetterFromModel(letter store.Letter) LetterDTO {
	return LetterDTO{
		ID:         letter.ID,
		LetterType: letter.LetterType,
		Language:   letter.Language,
		Content:    letter.Content,
		CreatedAt:  letter.CreatedAt,
	}
}

// UserStats summarizes a user's activity for the dashboard.
type UserStats struct {
	TotalDocumentsAnalyzed int `json:"total_documents_analyzed"`
	TotalLettersGenerated  int `json:"total_letters_generated"`
	HighRiskClausesFound   int `json:"high_risk_clauses_found"`
	MediumRiskClausesFound int `json:"medium_risk_clauses_found"`
}

// RecentDocument is a dashboard row for a recently analyzed document.
type RecentDocument struct {
	ID           uint      `json:"id"`
	Filename     string    `json:"filename"`
	OverallScore float64   `json:"overall_score"`
	RiskLevel    string    `json:"risk_level"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuickAction is a dashboard shortcut entry.
type QuickAction struct {
	Action string `json:"action"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// DashboardResponse bundles stats and recent activity.
type DashboardResponse struct {
	UserStats       UserStats        `json:"user_stats"`
	RecentDocuments []RecentDocument `json:"recent_documents"`
	QuickActions    []QuickAction    `json:"quick_actions"`
}

// riskLevel buckets a fairness score into the dashboard's risk categories.
func riskLevel(score float64) string {
	switch {
	case score < 50:
		return "high"
	case score < 75:
		return "medium"
	default:
		return "low"
	}
}
