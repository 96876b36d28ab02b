package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeJSONBlock trims markdown fences and surrounding prose so the
// remaining text starts at the first '{' and ends at the last '}'. Models
// routinely wrap JSON in ```json fences despite strict-output instructions.
func NormalizeJSONBlock(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if strings.HasSuffix(trimmed, "```") {
			trimmed = trimmed[:len(trimmed)-3]
		}
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end >= start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

// DecodeJSON normalizes a model response and unmarshals it into out.
func DecodeJSON(content string, out any) error {
	block := NormalizeJSONBlock(content)
	if block == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(block), out); err != nil {
		return fmt.Errorf("parse ai response: %w", err)
	}
	return nil
}
