package answer

import (
	"context"
	"time"

	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"
)

// KnowledgeBaseResolver answers from the FAQ table by exact
// case-insensitive question match, writing hits through to the cache.
type KnowledgeBaseResolver struct {
	uowFactory unitofwork.RepositoryFactory
	cache      AnswerCache
	cacheTTL   time.Duration
}

var _ Resolver = &KnowledgeBaseResolver{}

func NewKnowledgeBaseResolver(uowFactory unitofwork.RepositoryFactory, cache AnswerCache, cacheTTL time.Duration) *KnowledgeBaseResolver {
	return &KnowledgeBaseResolver{
		uowFactory: uowFactory,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (r *KnowledgeBaseResolver) Name() string {
	return "knowledge_base"
}

func (r *KnowledgeBaseResolver) TryResolve(ctx context.Context, q Query) (*Result, bool) {
	if q.Text == "" {
		return nil, false
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	faq, err := uow.FaqRepository().FindOne(ctx,
		specification.QuestionEqualsFold{Question: q.Text},
	)
	if err != nil || faq == nil {
		return nil, false
	}

	// Write-through; a cache failure only costs the next lookup a DB hit.
	_ = r.cache.SetCachedAnswer(ctx, q.Text, faq.Answer, r.cacheTTL)

	return &Result{
		Answer: faq.Answer,
		Source: SourceKnowledgeBase,
	}, true
}
