package letters

import (
	"context"
	"strings"
	"testing"
	"time"

	"tenantrights-ai/backend/internal/ai"
)

type recordingAssistant struct {
	system string
	prompt string
}

func (r *recordingAssistant) Enabled() bool { return true }

func (r *recordingAssistant) Complete(ctx context.Context, req ai.Request) (string, error) {
	r.system = req.System
	r.prompt = req.Prompt
	return "Dear Landlord,\n\nPlease fix the heating.\n\nSincerely,\nJane Doe", nil
}

func TestGenerateBuildsPromptFromInput(t *testing.T) {
	assistant := &recordingAssistant{}
	svc := NewService(assistant, nil)
	svc.now = func() time.Time { return time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC) }

	result, err := svc.Generate(context.Background(), Input{
		UserID:     1,
		LetterType: TypeRepairRequest,
		Context:    "Heating broken for two weeks",
		Tenant:     TenantInfo{Name: "Jane Doe", Address: "12 Elm St"},
		Landlord:   LandlordInfo{Name: "Acme Properties"},
		SpecificIssues: []string{
			"No heat in bedroom",
			"Water damage on ceiling",
		},
		Language: "en",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"requesting repairs",
		"Date: March 9, 2026",
		"Tenant: Jane Doe",
		"Landlord: Acme Properties",
		"Company: Acme Properties",
		"Tenant Phone: N/A",
		"• No heat in bedroom",
		"Context: Heating broken for two weeks",
	} {
		if !strings.Contains(assistant.prompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, assistant.prompt)
		}
	}
	if !strings.Contains(assistant.system, "legal assistant") {
		t.Fatalf("expected system prompt, got %q", assistant.system)
	}
	if result.LetterType != TypeRepairRequest {
		t.Fatalf("expected %s got %s", TypeRepairRequest, result.LetterType)
	}
	if result.Content == "" {
		t.Fatalf("expected drafted content")
	}
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	svc := NewService(&recordingAssistant{}, nil)
	if _, err := svc.Generate(context.Background(), Input{LetterType: "love_note"}); err == nil {
		t.Fatalf("expected error for unknown letter type")
	}
}

func TestGenerateLanguageInstruction(t *testing.T) {
	assistant := &recordingAssistant{}
	svc := NewService(assistant, nil)

	_, err := svc.Generate(context.Background(), Input{
		LetterType: TypeHabitability,
		Tenant:     TenantInfo{Name: "Ana", Address: "Calle 5"},
		Landlord:   LandlordInfo{Name: "Sr. Lopez"},
		Language:   "es",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(assistant.prompt, "español") {
		t.Fatalf("expected Spanish instruction in prompt, got:\n%s", assistant.prompt)
	}
}

func TestGenerateNormalizesLanguage(t *testing.T) {
	assistant := &recordingAssistant{}
	svc := NewService(assistant, nil)

	result, err := svc.Generate(context.Background(), Input{
		LetterType: TypeGeneralConcern,
		Tenant:     TenantInfo{Name: "Kim", Address: "5th Ave"},
		Landlord:   LandlordInfo{Name: "Big Corp"},
		Language:   "klingon",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Language != "en" {
		t.Fatalf("expected en got %s", result.Language)
	}
}

func TestCatalogCoversTemplates(t *testing.T) {
	catalog := Catalog()
	for letterType := range catalog {
		if !ValidType(letterType) {
			t.Fatalf("catalog entry %s has no template", letterType)
		}
	}
	if !ValidType(TypeGeneralConcern) {
		t.Fatalf("expected general_concern template")
	}
}
