package analysis

import (
	"fmt"
	"strings"

	"tenantrights-ai/backend/internal/lang"
)

const (
	clauseSystemPrompt  = "You are a helpful tenant rights lawyer. Follow the language instructions exactly. ONLY respond with valid JSON, no extra text."
	rightsSystemPrompt  = "You are a tenant rights expert. Follow the language instructions exactly. ONLY respond with valid JSON, no extra text."
	summarySystemPrompt = "You are a helpful legal assistant who explains things simply. Follow the language instructions exactly."
	explainSystemPrompt = "You are a helpful legal expert who explains complex terms simply."
)

func buildClausePrompt(chunk, language string) string {
	var b strings.Builder
	b.WriteString("You are a tenant rights expert lawyer. Analyze the following lease text and identify potentially unfair, illegal, or problematic clauses.\n\n")
	fmt.Fprintf(&b, "CRITICAL LANGUAGE INSTRUCTION: %s\n\n", lang.Instruction(language))
	b.WriteString("IMPORTANT: You MUST write ALL text fields (clause_text, issue, explanation, recommendation) in the specified language. DO NOT MIX LANGUAGES.\n\n")
	fmt.Fprintf(&b, "Lease text:\n%s\n\n", chunk)
	b.WriteString("For each problematic clause you find, provide:\n")
	b.WriteString("1. A summary of the clause\n")
	b.WriteString("2. Why it's problematic\n")
	b.WriteString("3. The severity (high, medium, low)\n")
	b.WriteString("4. A clear explanation\n")
	b.WriteString("5. The recommended action for the tenant\n\n")
	b.WriteString("Format your response as JSON with this structure:\n")
	b.WriteString(`{"clauses": [{"clause_text": "...", "issue": "...", "severity": "high/medium/low", "explanation": "...", "recommendation": "..."}]}`)
	return b.String()
}

func buildRightsPrompt(chunk, language string) string {
	var b strings.Builder
	b.WriteString("Analyze this lease text and extract the key tenant rights and obligations.\n\n")
	fmt.Fprintf(&b, "CRITICAL LANGUAGE INSTRUCTION: %s\n\n", lang.Instruction(language))
	b.WriteString("IMPORTANT: You MUST write ALL text fields (title, description) in the specified language. DO NOT MIX LANGUAGES.\n\n")
	fmt.Fprintf(&b, "Lease text:\n%s\n\n", chunk)
	b.WriteString("Identify:\n")
	b.WriteString("1. Rights the tenant has\n")
	b.WriteString("2. Obligations the tenant must fulfill\n")
	b.WriteString("3. Important deadlines or procedures\n\n")
	b.WriteString("Format as JSON:\n")
	b.WriteString(`{"rights": [{"title": "...", "description": "...", "importance": "high/medium/low"}]}`)
	return b.String()
}

func buildSummaryPrompt(text, language string) string {
	var b strings.Builder
	b.WriteString("You are helping low-income renters understand their lease agreements. Summarize this lease document in plain, simple language that a 6th grader could understand.\n\n")
	fmt.Fprintf(&b, "CRITICAL LANGUAGE INSTRUCTION: %s\n\n", lang.Instruction(language))
	b.WriteString("Focus on:\n")
	b.WriteString("- Key terms and conditions\n")
	b.WriteString("- Important dates and deadlines\n")
	b.WriteString("- What the tenant needs to know\n")
	b.WriteString("- Any red flags or concerns\n\n")
	b.WriteString("Keep it under 300 words and use simple language in the specified language.\n\n")
	fmt.Fprintf(&b, "Lease document:\n%s", text)
	return b.String()
}

func buildExplainPrompt(clause string) string {
	var b strings.Builder
	b.WriteString("Explain this lease clause in simple, plain English that anyone can understand:\n\n")
	fmt.Fprintf(&b, "Clause: %q\n\n", clause)
	b.WriteString("Provide:\n")
	b.WriteString("1. What it means in everyday language\n")
	b.WriteString("2. Why it matters to tenants\n")
	b.WriteString("3. Whether it's fair or potentially problematic\n")
	b.WriteString("4. What tenants should know about it\n\n")
	b.WriteString("Keep your explanation clear and under 200 words.")
	return b.String()
}
