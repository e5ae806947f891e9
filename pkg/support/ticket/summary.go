package ticket

import (
	"fmt"
	"strings"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"
)

const initialIssuePreviewLength = 100

// BuildResolutionSummary condenses a session transcript into the block
// appended to a ticket on resolution.
func BuildResolutionSummary(history []*entity.ChatMessage, resolvedAt time.Time) string {
	initialIssue := "Unknown"
	method := "AI-generated solution"

	for _, msg := range history {
		if msg.Role == constant.ChatMessageRoleUser {
			initialIssue = truncate(msg.Content, initialIssuePreviewLength)
			break
		}
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == constant.ChatMessageRoleAssistant {
			if strings.Contains(history[i].Content, "FAQ") {
				method = "FAQ-based solution"
			}
			break
		}
	}

	var b strings.Builder
	b.WriteString("RESOLUTION SUMMARY:\n")
	fmt.Fprintf(&b, "- Initial Issue: %s\n", initialIssue)
	fmt.Fprintf(&b, "- Resolution Method: %s\n", method)
	fmt.Fprintf(&b, "- Conversation Length: %d messages\n", len(history))
	fmt.Fprintf(&b, "- Resolution Time: %s\n", resolvedAt.Format(time.RFC3339))
	b.WriteString("- Customer Confirmed: Yes")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
