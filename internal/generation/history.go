package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// Rough character budget per token, used only to bound how much transcript
// is replayed into a generation request.
const charsPerToken = 4

// turn is one entry of the serialized conversation transcript.
type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// decodeHistory parses the opaque transcript stored on a chat row. An empty
// transcript decodes to nil.
func decodeHistory(history string) ([]turn, error) {
	if history == "" {
		return nil, nil
	}
	var turns []turn
	if err := json.Unmarshal([]byte(history), &turns); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return turns, nil
}

// encodeHistory serializes the transcript for storage.
func encodeHistory(turns []turn) (string, error) {
	if len(turns) == 0 {
		return "", nil
	}
	data, err := json.Marshal(turns)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatHistory renders a stored transcript as readable text, one turn per
// paragraph. Empty or corrupt transcripts render as the empty string.
func FormatHistory(history string) string {
	turns, err := decodeHistory(history)
	if err != nil || len(turns) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		label := "You"
		if t.Role == roleAssistant {
			label = "Bot"
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
	}
	return sb.String()
}

// buildMessages assembles the request messages: intro first, then as many of
// the most recent transcript turns as fit the token budget, then the prompt.
// Older turns are dropped first so the freshest context survives.
func buildMessages(intro string, turns []turn, prompt string, maxTokens int) []turn {
	budget := maxTokens * charsPerToken
	if budget <= 0 {
		budget = 2048 * charsPerToken
	}

	used := len(prompt)
	start := len(turns)
	for start > 0 && used+len(turns[start-1].Content) <= budget {
		used += len(turns[start-1].Content)
		start--
	}

	messages := make([]turn, 0, len(turns)-start+2)
	if intro != "" {
		messages = append(messages, turn{Role: "system", Content: intro})
	}
	messages = append(messages, turns[start:]...)
	messages = append(messages, turn{Role: roleUser, Content: prompt})
	return messages
}
