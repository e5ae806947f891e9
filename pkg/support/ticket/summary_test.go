package ticket

import (
	"strings"
	"testing"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildResolutionSummary(t *testing.T) {
	resolvedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	history := []*entity.ChatMessage{
		{Role: constant.ChatMessageRoleUser, Content: "I was double charged"},
		{Role: constant.ChatMessageRoleAssistant, Content: "Here is how to request a refund."},
		{Role: constant.ChatMessageRoleUser, Content: "thanks"},
	}

	summary := BuildResolutionSummary(history, resolvedAt)

	assert.Contains(t, summary, "Initial Issue: I was double charged")
	assert.Contains(t, summary, "Resolution Method: AI-generated solution")
	assert.Contains(t, summary, "Conversation Length: 3 messages")
	assert.Contains(t, summary, resolvedAt.Format(time.RFC3339))
	assert.Contains(t, summary, "Customer Confirmed: Yes")
}

func TestBuildResolutionSummaryFaqMethod(t *testing.T) {
	history := []*entity.ChatMessage{
		{Role: constant.ChatMessageRoleUser, Content: "How do I reset my password?"},
		{Role: constant.ChatMessageRoleAssistant, Content: "From our FAQ: use the forgot-password link."},
	}

	summary := BuildResolutionSummary(history, time.Now())

	assert.Contains(t, summary, "Resolution Method: FAQ-based solution")
}

func TestBuildResolutionSummaryTruncatesInitialIssue(t *testing.T) {
	long := strings.Repeat("x", 150)
	history := []*entity.ChatMessage{
		{Role: constant.ChatMessageRoleUser, Content: long},
	}

	summary := BuildResolutionSummary(history, time.Now())

	assert.Contains(t, summary, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, summary, strings.Repeat("x", 101))
}

func TestBuildResolutionSummaryEmptyHistory(t *testing.T) {
	summary := BuildResolutionSummary(nil, time.Now())

	assert.Contains(t, summary, "Initial Issue: Unknown")
	assert.Contains(t, summary, "Conversation Length: 0 messages")
}
