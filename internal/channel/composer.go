package channel

import (
	"fmt"
	"strings"

	"github.com/tasknotify/telegram-relay-go/internal/config"
	"github.com/tasknotify/telegram-relay-go/internal/model"
)

const (
	markerDone    = "✅"
	markerPending = "⏳"

	// replyCommand is the prefix a human uses to route a follow-up
	// command back to the session: "/task <TOKEN> <command>".
	replyCommand = "/task"
)

// Compose turns a notification plus its freshly issued token into the
// ordered message parts to deliver: a header first, then the relayed
// response text split into chunks. The header is the only interactive
// part.
//
// Chunks are measured in runes, not bytes, so multibyte text keeps
// stable boundaries and the concatenated chunks reproduce the original
// response exactly.
func Compose(n model.Notification, token, botName string) []model.MessagePart {
	marker, label := markerPending, "Waiting for input"
	if n.Type == model.TypeCompleted {
		marker, label = markerDone, "Task completed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s\n", marker, botName, label)
	fmt.Fprintf(&b, "📁 *%s*\n", n.Project)
	if n.Message != "" {
		b.WriteString(n.Message)
		b.WriteString("\n")
	}
	if n.Metadata != nil && n.Metadata.UserQuestion != "" {
		fmt.Fprintf(&b, "\n❓ %s\n", n.Metadata.UserQuestion)
	}
	fmt.Fprintf(&b, "\n🔑 Token: `%s`\n", token)
	fmt.Fprintf(&b, "Reply with: %s %s <command>", replyCommand, token)

	parts := []model.MessagePart{{Text: b.String(), Interactive: true}}

	var response string
	if n.Metadata != nil {
		response = n.Metadata.ClaudeResponse
	}
	chunks := splitRunes(response, config.MessageChunkSize)
	for i, chunk := range chunks {
		text := chunk
		if len(chunks) > 1 {
			text = fmt.Sprintf("(%d/%d)\n%s", i+1, len(chunks), chunk)
		}
		parts = append(parts, model.MessagePart{Text: text})
	}

	return parts
}

// splitRunes cuts s into chunks of at most size runes, preserving order.
// An empty string yields no chunks.
func splitRunes(s string, size int) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
