package answer

import (
	"context"
	"time"

	"csupport-chat-be/internal/pkg/logger"
)

// Answer sources, attached to each Result and logged when a tier wins.
const (
	SourceCache         = "cache"
	SourceKnowledgeBase = "knowledge_base"
	SourceGenerative    = "generative"
)

// Query is one question to answer.
type Query struct {
	SessionID string
	Text      string
	Category  string
}

// Result is a successful resolution from one tier.
type Result struct {
	Answer string
	Source string
}

// Resolver is one tier in the fallback chain. A tier that cannot answer
// (miss, network error, empty output) returns ok=false; errors never
// propagate past the tier boundary.
type Resolver interface {
	Name() string
	TryResolve(ctx context.Context, q Query) (*Result, bool)
}

// AnswerCache is the slice of the ephemeral store the chain needs.
type AnswerCache interface {
	GetCachedAnswer(ctx context.Context, question string) (string, bool, error)
	SetCachedAnswer(ctx context.Context, question, answer string, ttl time.Duration) error
}

// Chain walks an ordered list of resolvers; first success wins.
type Chain struct {
	resolvers []Resolver
	logger    logger.ILogger
}

func NewChain(log logger.ILogger, resolvers ...Resolver) *Chain {
	return &Chain{
		resolvers: resolvers,
		logger:    log,
	}
}

// Resolve returns the first tier's answer, or ok=false when every tier is
// exhausted. "No answer" is distinct from an empty answer string.
func (c *Chain) Resolve(ctx context.Context, q Query) (*Result, bool) {
	for _, resolver := range c.resolvers {
		result, ok := resolver.TryResolve(ctx, q)
		if !ok {
			continue
		}
		c.logger.Debug("AnswerChain", "Tier resolved query", map[string]interface{}{
			"tier":    resolver.Name(),
			"session": q.SessionID,
			"source":  result.Source,
		})
		return result, true
	}
	return nil, false
}
