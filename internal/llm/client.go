// Package llm provides interfaces and implementations for LLM-backed
// structured extraction.
package llm

import (
	"context"
	"strings"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

// extractJSON strips a markdown code fence from a model response, if
// present, and returns the JSON payload inside.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		if idx := strings.Index(s, fence); idx != -1 {
			start := idx + len(fence)
			rest := s[start:]
			if end := strings.Index(rest, "```"); end != -1 {
				return strings.TrimSpace(rest[:end])
			}
		}
	}
	return strings.TrimSpace(s)
}
