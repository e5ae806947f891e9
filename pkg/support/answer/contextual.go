package answer

import (
	"context"
	"strings"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/pkg/llm"
)

const historyWindow = 10

// HistoryLoader supplies the recent conversation turns for context-aware
// tiers.
type HistoryLoader interface {
	HistoryMessages(ctx context.Context, sessionID string, limit int) ([]llm.Message, error)
}

// ContextualResolver answers with conversation history as context. Used for
// the secondary (hosted) and local model tiers; answers are never cached
// because the surrounding conversation varies per call.
type ContextualResolver struct {
	name        string
	provider    llm.LLMProvider
	history     HistoryLoader
	instruction string
	options     []llm.Option
}

var _ Resolver = &ContextualResolver{}

func NewContextualResolver(name string, provider llm.LLMProvider, history HistoryLoader, instruction string, options ...llm.Option) *ContextualResolver {
	return &ContextualResolver{
		name:        name,
		provider:    provider,
		history:     history,
		instruction: instruction,
		options:     options,
	}
}

func (r *ContextualResolver) Name() string {
	return r.name
}

func (r *ContextualResolver) TryResolve(ctx context.Context, q Query) (*Result, bool) {
	if q.Text == "" {
		return nil, false
	}

	history, err := r.history.HistoryMessages(ctx, q.SessionID, historyWindow)
	if err != nil {
		history = []llm.Message{}
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: r.instruction})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: q.Text})

	text, err := r.provider.Chat(ctx, messages, r.options...)
	if err != nil {
		return nil, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	return &Result{
		Answer: text,
		Source: SourceGenerative,
	}, true
}
