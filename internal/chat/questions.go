package chat

import "strings"

// maxReferences caps how many legal concepts get surfaced per reply.
const maxReferences = 3

// legalConcepts are the references scanned for in assistant replies.
var legalConcepts = []string{
	"Implied warranty of habitability",
	"Right to quiet enjoyment",
	"Fair Housing Act",
	"Local tenant protection laws",
	"Lease agreement terms",
	"Security deposit regulations",
}

// SuggestedQuestions returns follow-up questions keyed off the topic of the
// user's last message.
func SuggestedQuestions(userMessage string) []string {
	lower := strings.ToLower(userMessage)
	switch {
	case strings.Contains(lower, "rent"):
		return []string{
			"What notice is required for rent increases?",
			"Can I withhold rent for repairs?",
			"What are rent control laws in my area?",
		}
	case strings.Contains(lower, "repair"), strings.Contains(lower, "maintenance"):
		return []string{
			"How long does my landlord have to make repairs?",
			"What if my landlord won't respond to repair requests?",
			"Can I make repairs and deduct from rent?",
		}
	case strings.Contains(lower, "evict"):
		return []string{
			"What are valid reasons for eviction?",
			"How much notice is required for eviction?",
			"What should I do if I receive an eviction notice?",
		}
	case strings.Contains(lower, "deposit"):
		return []string{
			"When should I get my security deposit back?",
			"Can my landlord keep my deposit for normal wear and tear?",
			"What documentation should I provide?",
		}
	default:
		return []string{
			"What are my basic rights as a tenant?",
			"How do I document issues with my rental?",
			"Where can I get legal help in my area?",
		}
	}
}

// ExtractReferences scans a reply for known legal concepts, capped at three.
func ExtractReferences(response string) []string {
	lower := strings.ToLower(response)
	var refs []string
	for _, concept := range legalConcepts {
		for _, word := range strings.Fields(strings.ToLower(concept)) {
			if strings.Contains(lower, word) {
				refs = append(refs, concept)
				break
			}
		}
		if len(refs) == maxReferences {
			break
		}
	}
	return refs
}

// QuestionGroup is a category of common tenant questions.
type QuestionGroup struct {
	Category  string   `json:"category"`
	Questions []string `json:"questions"`
}

// CommonQuestions returns the curated catalog shown before a conversation
// starts.
func CommonQuestions() []QuestionGroup {
	return []QuestionGroup{
		{
			Category: "Rent & Payments",
			Questions: []string{
				"Can my landlord increase my rent mid-lease?",
				"What happens if I'm late on rent?",
				"Are there limits on how much rent can be increased?",
			},
		},
		{
			Category: "Repairs & Maintenance",
			Questions: []string{
				"What repairs is my landlord responsible for?",
				"How long does my landlord have to fix problems?",
				"Can I withhold rent if repairs aren't made?",
			},
		},
		{
			Category: "Privacy & Entry",
			Questions: []string{
				"Can my landlord enter my apartment without notice?",
				"What is considered proper notice for entry?",
				"What can I do about unauthorized entry?",
			},
		},
		{
			Category: "Security Deposits",
			Questions: []string{
				"When should I get my security deposit back?",
				"What can landlords deduct from deposits?",
				"How do I dispute deposit deductions?",
			},
		},
		{
			Category: "Evictions",
			Questions: []string{
				"What are valid reasons for eviction?",
				"How much notice is required for eviction?",
				"What are my rights during eviction proceedings?",
			},
		},
	}
}
