package answer

import (
	"context"
	"errors"
	"testing"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply    string
	err      error
	received []llm.Message
}

func (p *stubProvider) Chat(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	p.received = messages
	return p.reply, p.err
}

func (p *stubProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	p.received = []llm.Message{{Role: constant.ChatMessageRoleUser, Content: prompt}}
	return p.reply, p.err
}

type stubHistory struct {
	messages []llm.Message
}

func (h *stubHistory) HistoryMessages(context.Context, string, int) ([]llm.Message, error) {
	return h.messages, nil
}

func TestContextualResolverBuildsPrompt(t *testing.T) {
	provider := &stubProvider{reply: "Based on what you said earlier, restart the sync."}
	history := &stubHistory{messages: []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: "My sync is stuck"},
		{Role: constant.ChatMessageRoleAssistant, Content: "How long has it been stuck?"},
	}}

	resolver := NewContextualResolver("secondary", provider, history, constant.ContextualAgentInstruction)

	result, ok := resolver.TryResolve(context.Background(), Query{SessionID: "s1", Text: "Two hours now"})
	require.True(t, ok)
	assert.Equal(t, SourceGenerative, result.Source)

	require.Len(t, provider.received, 4)
	assert.Equal(t, constant.ChatMessageRoleSystem, provider.received[0].Role)
	assert.Equal(t, constant.ContextualAgentInstruction, provider.received[0].Content)
	assert.Equal(t, "My sync is stuck", provider.received[1].Content)
	assert.Equal(t, "Two hours now", provider.received[3].Content)
}

func TestContextualResolverProviderFailureFallsThrough(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	resolver := NewContextualResolver("secondary", provider, &stubHistory{}, constant.ContextualAgentInstruction)

	result, ok := resolver.TryResolve(context.Background(), Query{SessionID: "s1", Text: "help"})
	assert.False(t, ok)
	assert.Nil(t, result)
}
