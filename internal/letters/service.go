package letters

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tenantrights-ai/backend/internal/ai"
	"tenantrights-ai/backend/internal/lang"
	"tenantrights-ai/backend/internal/store"
)

const letterSystemPrompt = "You are a legal assistant helping tenants write professional, formal letters to their landlords. Write clear, polite but firm letters that protect tenant rights."

// Input carries everything needed to draft one letter.
type Input struct {
	UserID         uint
	LetterType     string
	Context        string
	Tenant         TenantInfo
	Landlord       LandlordInfo
	SpecificIssues []string
	Language       string
}

// Result is a drafted letter plus its stored id.
type Result struct {
	LetterID   uint      `json:"letter_id,omitempty"`
	LetterType string    `json:"letter_type"`
	Content    string    `json:"content"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service drafts formal landlord letters.
type Service struct {
	assistant ai.Assistant
	db        *store.Database
	now       func() time.Time
}

// NewService constructs the letter service.
func NewService(assistant ai.Assistant, db *store.Database) *Service {
	return &Service{assistant: assistant, db: db, now: time.Now}
}

// Generate drafts a letter of the requested type and persists it.
func (s *Service) Generate(ctx context.Context, input Input) (Result, error) {
	if !ValidType(input.LetterType) {
		return Result{}, fmt.Errorf("unknown letter type %q", input.LetterType)
	}
	language := lang.Normalize(input.Language)

	var content string
	if s.assistant == nil || !s.assistant.Enabled() {
		content = "Demo letter: Configure an AI provider to generate professional letters to your landlord."
	} else {
		prompt := buildLetterPrompt(input.LetterType, language, input.Context, input.Tenant, input.Landlord, input.SpecificIssues, s.now())
		systemPrompt := fmt.Sprintf("%s\n\nCRITICAL LANGUAGE INSTRUCTION: %s\n\nFollow the language instructions exactly.", letterSystemPrompt, lang.LetterInstruction(language))
		drafted, err := s.assistant.Complete(ctx, ai.Request{
			System:      systemPrompt,
			Prompt:      prompt,
			Temperature: 0.1,
			MaxTokens:   2048,
		})
		if err != nil {
			return Result{}, fmt.Errorf("letter generation: %w", err)
		}
		content = drafted
	}

	result := Result{LetterType: input.LetterType, Content: content, Language: language, CreatedAt: s.now()}

	if s.db != nil {
		letter := &store.Letter{
			UserID:     input.UserID,
			LetterType: input.LetterType,
			Language:   language,
			Content:    content,
		}
		letterContext := map[string]any{
			"context":         input.Context,
			"tenant_info":     input.Tenant,
			"landlord_info":   input.Landlord,
			"specific_issues": input.SpecificIssues,
		}
		letter.SetContext(letterContext)
		if err := s.db.SaveLetter(letter); err != nil {
			logrus.WithError(err).Warn("save letter")
			return result, nil
		}
		result.LetterID = letter.ID
		result.CreatedAt = letter.CreatedAt
	}

	return result, nil
}
