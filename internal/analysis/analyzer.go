package analysis

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"tenantrights-ai/backend/internal/ai"
	"tenantrights-ai/backend/internal/lang"
)

const (
	chunkSize         = 2000
	chunkOverlap      = 200
	maxClauses        = 20
	summaryInputLimit = 4000

	aiMaxRetries     = 3
	aiInitialBackoff = 2 * time.Second
	aiMaxBackoff     = 10 * time.Second
)

// Analyzer runs the lease analysis pipeline against an AI assistant.
type Analyzer struct {
	assistant ai.Assistant
}

// NewAnalyzer constructs an analyzer over the given assistant.
func NewAnalyzer(assistant ai.Assistant) *Analyzer {
	return &Analyzer{assistant: assistant}
}

// Enabled reports whether an AI provider is configured.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.assistant != nil && a.assistant.Enabled()
}

// AnalyzeDocument chunks the extracted lease text, flags unfair clauses and
// tenant rights per chunk, summarizes the whole document, and derives the
// recommendation list and fairness score. Clause findings are capped at the
// twenty most severe.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, text, language string) (DocumentAnalysis, error) {
	language = lang.Normalize(language)

	if !a.Enabled() {
		return demoAnalysis(), nil
	}

	chunks := SplitText(text, chunkSize, chunkOverlap)

	var allClauses []ClauseAnalysis
	var allRights []TenantRight
	for i, chunk := range chunks {
		clauses, err := a.identifyUnfairClauses(ctx, chunk, language)
		if err != nil {
			if ctx.Err() != nil {
				return DocumentAnalysis{}, ctx.Err()
			}
			logrus.WithError(err).WithField("chunk", i).Warn("identify unfair clauses")
		}
		allClauses = append(allClauses, clauses...)

		rights, err := a.extractTenantRights(ctx, chunk, language)
		if err != nil {
			if ctx.Err() != nil {
				return DocumentAnalysis{}, ctx.Err()
			}
			logrus.WithError(err).WithField("chunk", i).Warn("extract tenant rights")
		}
		allRights = append(allRights, rights...)
	}

	summary, err := a.summarize(ctx, text, language)
	if err != nil {
		if ctx.Err() != nil {
			return DocumentAnalysis{}, ctx.Err()
		}
		logrus.WithError(err).Warn("generate summary")
		summary = ""
	}

	limited := LimitClauses(allClauses, maxClauses)

	return DocumentAnalysis{
		UnfairClauses:       limited,
		PlainEnglishSummary: summary,
		TenantRights:        allRights,
		Recommendations:     BuildRecommendations(limited, language),
		OverallScore:        OverallScore(limited),
	}, nil
}

// ExplainClause returns a plain-language explanation of a single clause.
func (a *Analyzer) ExplainClause(ctx context.Context, clauseText string) (string, error) {
	if !a.Enabled() {
		return "Demo explanation: configure an AI provider to get detailed explanations of specific lease clauses in plain English.", nil
	}
	return a.complete(ctx, ai.Request{
		System:      explainSystemPrompt,
		Prompt:      buildExplainPrompt(clauseText),
		Temperature: 0.4,
		MaxTokens:   1024,
	})
}

func (a *Analyzer) identifyUnfairClauses(ctx context.Context, chunk, language string) ([]ClauseAnalysis, error) {
	content, err := a.complete(ctx, ai.Request{
		System:      clauseSystemPrompt,
		Prompt:      buildClausePrompt(chunk, language),
		Temperature: 0.1,
		MaxTokens:   2048,
		ForceJSON:   true,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Clauses []ClauseAnalysis `json:"clauses"`
	}
	if err := ai.DecodeJSON(content, &parsed); err != nil {
		return nil, err
	}
	for i := range parsed.Clauses {
		parsed.Clauses[i].Severity = NormalizeSeverity(parsed.Clauses[i].Severity)
	}
	return parsed.Clauses, nil
}

func (a *Analyzer) extractTenantRights(ctx context.Context, chunk, language string) ([]TenantRight, error) {
	content, err := a.complete(ctx, ai.Request{
		System:      rightsSystemPrompt,
		Prompt:      buildRightsPrompt(chunk, language),
		Temperature: 0.1,
		MaxTokens:   2048,
		ForceJSON:   true,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Rights []TenantRight `json:"rights"`
	}
	if err := ai.DecodeJSON(content, &parsed); err != nil {
		return nil, err
	}
	for i := range parsed.Rights {
		parsed.Rights[i].Importance = NormalizeSeverity(parsed.Rights[i].Importance)
	}
	return parsed.Rights, nil
}

func (a *Analyzer) summarize(ctx context.Context, text, language string) (string, error) {
	runes := []rune(text)
	if len(runes) > summaryInputLimit {
		text = string(runes[:summaryInputLimit])
	}
	return a.complete(ctx, ai.Request{
		System:      summarySystemPrompt,
		Prompt:      buildSummaryPrompt(text, language),
		Temperature: 0.3,
		MaxTokens:   2048,
	})
}

// complete wraps the assistant call with exponential backoff on quota and
// transient provider failures.
func (a *Analyzer) complete(ctx context.Context, req ai.Request) (string, error) {
	delay := aiInitialBackoff
	var lastErr error
	for attempt := 0; attempt < aiMaxRetries; attempt++ {
		content, err := a.assistant.Complete(ctx, req)
		if err == nil {
			return content, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !ai.Retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > aiMaxBackoff {
			delay = aiMaxBackoff
		}
	}
	return "", lastErr
}

// demoAnalysis is returned when no AI provider is configured so local
// development still exercises the full flow.
func demoAnalysis() DocumentAnalysis {
	clauses := []ClauseAnalysis{{
		ClauseText:     "Demo clause analysis",
		Issue:          "AI provider credentials required for full analysis",
		Severity:       SeverityLow,
		Explanation:    "Configure a Gemini or OpenAI API key to get detailed clause analysis",
		Recommendation: "Add your API key to the .env file",
	}}
	return DocumentAnalysis{
		UnfairClauses:       clauses,
		PlainEnglishSummary: "Demo summary: configure an AI provider to get detailed document analysis and plain-language summaries of your lease agreement.",
		TenantRights: []TenantRight{{
			Title:       "Demo tenant right",
			Description: "AI provider credentials required for detailed rights analysis",
			Importance:  SeverityLow,
		}},
		Recommendations: BuildRecommendations(clauses, "en"),
		OverallScore:    OverallScore(clauses),
	}
}
