// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanResponse normalizes a raw model response into plain message text.
// Models occasionally wrap output in markdown code fences or quote the
// whole message even when instructed not to.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the opening fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	// Strip a single pair of wrapping quotes
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' && !strings.Contains(text[1:len(text)-1], "\"") {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}

	return text
}
