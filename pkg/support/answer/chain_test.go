package answer

import (
	"context"
	"strings"
	"testing"
	"time"

	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/contract"
	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries map[string]string
	sets    int
	gets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) GetCachedAnswer(_ context.Context, question string) (string, bool, error) {
	c.gets++
	answer, ok := c.entries[strings.ToLower(question)]
	return answer, ok, nil
}

func (c *fakeCache) SetCachedAnswer(_ context.Context, question, answer string, _ time.Duration) error {
	c.sets++
	c.entries[strings.ToLower(question)] = answer
	return nil
}

type fakeFaqRepo struct {
	faqs     []*entity.Faq
	findOnes int
}

func (r *fakeFaqRepo) Create(_ context.Context, faq *entity.Faq) error {
	r.faqs = append(r.faqs, faq)
	return nil
}

func (r *fakeFaqRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Faq, error) {
	r.findOnes++
	for _, spec := range specs {
		if eq, ok := spec.(specification.QuestionEqualsFold); ok {
			for _, faq := range r.faqs {
				if strings.EqualFold(faq.Question, eq.Question) {
					return faq, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeFaqRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Faq, error) {
	return r.faqs, nil
}

func (r *fakeFaqRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.faqs)), nil
}

type fakeUow struct {
	faqRepo *fakeFaqRepo
}

func (u *fakeUow) Begin(context.Context) error { return nil }
func (u *fakeUow) Commit() error               { return nil }
func (u *fakeUow) Rollback() error             { return nil }

func (u *fakeUow) TicketRepository() contract.TicketRepository           { return nil }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return nil }
func (u *fakeUow) FaqRepository() contract.FaqRepository                 { return u.faqRepo }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type stubResolver struct {
	name   string
	result *Result
	calls  int
}

func (r *stubResolver) Name() string { return r.name }

func (r *stubResolver) TryResolve(context.Context, Query) (*Result, bool) {
	r.calls++
	if r.result == nil {
		return nil, false
	}
	return r.result, true
}

func TestChainFirstSuccessWins(t *testing.T) {
	miss := &stubResolver{name: "miss"}
	hit := &stubResolver{name: "hit", result: &Result{Answer: "a", Source: SourceGenerative}}
	never := &stubResolver{name: "never", result: &Result{Answer: "b", Source: SourceGenerative}}

	chain := NewChain(logger.NewNopLogger(), miss, hit, never)

	result, ok := chain.Resolve(context.Background(), Query{SessionID: "s1", Text: "q"})
	require.True(t, ok)
	assert.Equal(t, "a", result.Answer)
	assert.Equal(t, 1, miss.calls)
	assert.Equal(t, 1, hit.calls)
	assert.Equal(t, 0, never.calls, "later tiers must not run after a hit")
}

func TestChainExhaustedSignalsNoAnswer(t *testing.T) {
	chain := NewChain(logger.NewNopLogger(), &stubResolver{name: "a"}, &stubResolver{name: "b"})

	result, ok := chain.Resolve(context.Background(), Query{SessionID: "s1", Text: "q"})
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestKnowledgeBaseWriteThrough(t *testing.T) {
	faqRepo := &fakeFaqRepo{faqs: []*entity.Faq{
		{Question: "How do I reset my password?", Answer: "Use the forgot-password link."},
	}}
	cache := newFakeCache()
	factory := &fakeUowFactory{uow: &fakeUow{faqRepo: faqRepo}}

	chain := NewChain(logger.NewNopLogger(),
		NewCacheResolver(cache),
		NewKnowledgeBaseResolver(factory, cache, time.Hour),
	)

	query := Query{SessionID: "s1", Text: "how do i reset my password?"}

	// First lookup goes to the knowledge base and populates the cache.
	result, ok := chain.Resolve(context.Background(), query)
	require.True(t, ok)
	assert.Equal(t, SourceKnowledgeBase, result.Source)
	assert.Equal(t, "Use the forgot-password link.", result.Answer)
	assert.Equal(t, 1, faqRepo.findOnes)
	assert.Equal(t, 1, cache.sets)

	// Second lookup is served from the cache without touching the KB.
	result, ok = chain.Resolve(context.Background(), query)
	require.True(t, ok)
	assert.Equal(t, SourceCache, result.Source)
	assert.Equal(t, "Use the forgot-password link.", result.Answer)
	assert.Equal(t, 1, faqRepo.findOnes, "knowledge base must not be queried again")
}

func TestGenerativePersistsNewFaq(t *testing.T) {
	faqRepo := &fakeFaqRepo{}
	cache := newFakeCache()
	factory := &fakeUowFactory{uow: &fakeUow{faqRepo: faqRepo}}
	provider := &stubProvider{reply: "Here is what to do."}

	resolver := NewGenerativeResolver(provider, factory, cache, time.Hour)

	result, ok := resolver.TryResolve(context.Background(), Query{SessionID: "s1", Text: "How do I export data?"})
	require.True(t, ok)
	assert.Equal(t, SourceGenerative, result.Source)
	require.Len(t, faqRepo.faqs, 1)
	assert.Equal(t, "How do I export data?", faqRepo.faqs[0].Question)
	assert.Equal(t, "Here is what to do.", faqRepo.faqs[0].Answer)
	assert.Equal(t, 1, cache.sets)
}
