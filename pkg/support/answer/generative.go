package answer

import (
	"context"
	"strings"
	"time"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/repository/unitofwork"
	"csupport-chat-be/pkg/llm"

	"github.com/google/uuid"
)

// GenerativeResolver asks the primary provider for a fresh answer and, on
// success, persists the question/answer pair as a new knowledge-base entry
// so the next customer skips the model call entirely.
type GenerativeResolver struct {
	provider   llm.LLMProvider
	uowFactory unitofwork.RepositoryFactory
	cache      AnswerCache
	cacheTTL   time.Duration
}

var _ Resolver = &GenerativeResolver{}

func NewGenerativeResolver(provider llm.LLMProvider, uowFactory unitofwork.RepositoryFactory, cache AnswerCache, cacheTTL time.Duration) *GenerativeResolver {
	return &GenerativeResolver{
		provider:   provider,
		uowFactory: uowFactory,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (r *GenerativeResolver) Name() string {
	return "generative_primary"
}

func (r *GenerativeResolver) TryResolve(ctx context.Context, q Query) (*Result, bool) {
	if q.Text == "" {
		return nil, false
	}

	text, err := r.provider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SupportAgentInstruction},
		{Role: constant.ChatMessageRoleUser, Content: q.Text},
	})
	if err != nil {
		return nil, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	// Both persistence steps are best-effort; the customer gets the answer
	// regardless.
	uow := r.uowFactory.NewUnitOfWork(ctx)
	_ = uow.FaqRepository().Create(ctx, &entity.Faq{
		Id:        uuid.New(),
		Question:  q.Text,
		Answer:    text,
		CreatedAt: time.Now(),
	})
	_ = r.cache.SetCachedAnswer(ctx, q.Text, text, r.cacheTTL)

	return &Result{
		Answer: text,
		Source: SourceGenerative,
	}, true
}
