package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"tenantrights-ai/backend/internal/ai"
	"tenantrights-ai/backend/internal/store"
)

// historyWindow caps how many prior turns are bundled into the prompt.
const historyWindow = 5

// documentContextLimit caps how much raw lease text can ride along.
const documentContextLimit = 2000

// Message is one turn of client-supplied chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Input describes a single chat request.
type Input struct {
	UserID     uint
	Message    string
	DocumentID *uint
	History    []Message
}

// Reply is the assistant's answer plus follow-up material.
type Reply struct {
	Response           string   `json:"response"`
	SuggestedQuestions []string `json:"suggested_questions"`
	References         []string `json:"references"`
	ChatID             uint     `json:"chat_id,omitempty"`
}

// Service answers tenant questions with optional document context.
type Service struct {
	assistant ai.Assistant
	db        *store.Database
}

// NewService constructs the chat service.
func NewService(assistant ai.Assistant, db *store.Database) *Service {
	return &Service{assistant: assistant, db: db}
}

// Respond assembles the conversation context, queries the assistant, and
// persists the exchange as a chat session.
func (s *Service) Respond(ctx context.Context, input Input) (Reply, error) {
	documentContext := s.documentContext(input.UserID, input.DocumentID)
	conversation := BuildConversationContext(input.History)

	if s.assistant == nil || !s.assistant.Enabled() {
		return Reply{
			Response: "Demo response: I'm a tenant rights assistant. Configure an AI provider to get real legal guidance and answers to your questions.",
			SuggestedQuestions: []string{
				"What are my rights as a tenant?",
				"Can my landlord increase my rent?",
				"What should I do about repairs?",
			},
			References: []string{"Demo reference - AI provider required"},
		}, nil
	}

	prompt := buildChatPrompt(input.Message, conversation, documentContext)
	response, err := s.assistant.Complete(ctx, ai.Request{
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("chat completion: %w", err)
	}

	reply := Reply{
		Response:           response,
		SuggestedQuestions: SuggestedQuestions(input.Message),
		References:         ExtractReferences(response),
	}

	if s.db != nil {
		session, err := s.db.CreateChatSession(input.UserID, input.DocumentID)
		if err != nil {
			logrus.WithError(err).Warn("create chat session")
			return reply, nil
		}
		messages := []store.ChatMessage{
			{Role: "user", Content: input.Message},
			{Role: "assistant", Content: response},
		}
		if err := s.db.AppendChatMessages(session.ID, messages); err != nil {
			logrus.WithError(err).WithField("session", session.ID).Warn("append chat messages")
		}
		reply.ChatID = session.ID
	}

	return reply, nil
}

// BuildConversationContext renders at most the last five history turns as a
// transcript block for the prompt.
func BuildConversationContext(history []Message) string {
	if len(history) == 0 {
		return "This is the start of a new conversation."
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var b strings.Builder
	for _, msg := range history {
		role := "Assistant"
		if msg.Role == "user" {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
	}
	return b.String()
}

func (s *Service) documentContext(userID uint, documentID *uint) string {
	if documentID == nil || s.db == nil {
		return ""
	}
	doc, err := s.db.GetDocument(*documentID, userID)
	if err != nil {
		logrus.WithError(err).WithField("document_id", *documentID).Debug("chat document lookup")
		return ""
	}
	result := doc.Analysis()
	var b strings.Builder
	b.WriteString("DOCUMENT CONTEXT:\n")
	fmt.Fprintf(&b, "Filename: %s\n", doc.Filename)
	fmt.Fprintf(&b, "Analysis Summary: %s\n", result.PlainEnglishSummary)
	fmt.Fprintf(&b, "Key Issues Found: %d problematic clauses\n", len(result.UnfairClauses))
	if text := strings.TrimSpace(doc.ExtractedText); text != "" {
		runes := []rune(text)
		if len(runes) > documentContextLimit {
			text = string(runes[:documentContextLimit])
		}
		fmt.Fprintf(&b, "Lease excerpt:\n%s\n", text)
	}
	return b.String()
}

func buildChatPrompt(userMessage, conversation, documentContext string) string {
	var b strings.Builder
	b.WriteString("You are TenantRights AI, a helpful and knowledgeable tenant rights assistant. You provide accurate legal information, practical advice, and empathetic support to tenants dealing with housing issues.\n\n")
	b.WriteString("GUIDELINES:\n")
	b.WriteString("- Provide accurate information about tenant rights and landlord-tenant law\n")
	b.WriteString("- Be empathetic and supportive while remaining professional\n")
	b.WriteString("- Always recommend consulting with a lawyer for complex legal issues\n")
	b.WriteString("- Give practical, actionable advice\n")
	b.WriteString("- Be concise but thorough\n")
	b.WriteString("- If you don't know something, say so and suggest where to find authoritative information\n\n")
	if documentContext != "" {
		b.WriteString(documentContext)
		b.WriteString("\n")
	}
	b.WriteString("CONVERSATION HISTORY:\n")
	b.WriteString(conversation)
	b.WriteString("\n")
	fmt.Fprintf(&b, "USER QUESTION: %s\n\n", userMessage)
	b.WriteString("Provide a helpful, accurate response. If referring to specific document analysis, make it clear. Always be supportive and practical in your advice.")
	return b.String()
}
