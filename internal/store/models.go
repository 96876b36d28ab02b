package store

import (
	"encoding/json"
	"strings"
	"time"

	"tenantrights-ai/backend/internal/analysis"
)

// Document status values tracked through the upload/analysis lifecycle.
const (
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Document represents an uploaded lease and its analysis output.
type Document struct {
	ID                  uint   `gorm:"primaryKey"`
	UserID              uint   `gorm:"index"`
	Filename            string `gorm:"size:256"`
	ArchiveURL          string `gorm:"size:512"`
	ExtractedText       string `gorm:"type:text"`
	Language            string `gorm:"size:8"`
	Status              string `gorm:"size:16;index"`
	StatusDetail        string `gorm:"size:255"`
	ClausesJSON         string `gorm:"type:text"`
	RightsJSON          string `gorm:"type:text"`
	RecommendationsJSON string `gorm:"type:text"`
	Summary             string `gorm:"type:text"`
	OverallScore        float64
	ProcessingTimeMs    int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SetAnalysis persists the structured analysis onto the row's JSON columns.
func (d *Document) SetAnalysis(result analysis.DocumentAnalysis) {
	clauses, _ := json.Marshal(result.UnfairClauses)
	rights, _ := json.Marshal(result.TenantRights)
	recs, _ := json.Marshal(result.Recommendations)
	d.ClausesJSON = string(clauses)
	d.RightsJSON = string(rights)
	d.RecommendationsJSON = string(recs)
	d.Summary = result.PlainEnglishSummary
	d.OverallScore = result.OverallScore
}

// Analysis reconstructs the structured analysis from the stored JSON columns.
func (d *Document) Analysis() analysis.DocumentAnalysis {
	result := analysis.DocumentAnalysis{
		PlainEnglishSummary: d.Summary,
		OverallScore:        d.OverallScore,
	}
	if strings.TrimSpace(d.ClausesJSON) != "" {
		_ = json.Unmarshal([]byte(d.ClausesJSON), &result.UnfairClauses)
	}
	if strings.TrimSpace(d.RightsJSON) != "" {
		_ = json.Unmarshal([]byte(d.RightsJSON), &result.TenantRights)
	}
	if strings.TrimSpace(d.RecommendationsJSON) != "" {
		_ = json.Unmarshal([]byte(d.RecommendationsJSON), &result.Recommendations)
	}
	return result
}

// Letter is a generated piece of tenant correspondence.
type Letter struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index"`
	LetterType  string `gorm:"size:32;index"`
	Language    string `gorm:"size:8"`
	Content     string `gorm:"type:text"`
	ContextJSON string `gorm:"type:text"`
	CreatedAt   time.Time
}

// SetContext stores the generation inputs for audit purposes.
func (l *Letter) SetContext(ctx any) {
	payload, _ := json.Marshal(ctx)
	l.ContextJSON = string(payload)
}

// ChatSession groups a sequence of chat messages, optionally anchored to a
// document.
type ChatSession struct {
	ID         uint  `gorm:"primaryKey"`
	UserID     uint  `gorm:"index"`
	DocumentID *uint `gorm:"index"`
	CreatedAt  time.Time
}

// ChatMessage is one turn in a chat session.
type ChatMessage struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID uint   `gorm:"index"`
	Role      string `gorm:"size:16"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
}
