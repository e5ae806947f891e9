package related

import (
	"context"
	"testing"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/entity"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/contract"
	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"
	"csupport-chat-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFaqRepo struct {
	faqs []*entity.Faq
}

func (r *fakeFaqRepo) Create(_ context.Context, faq *entity.Faq) error {
	r.faqs = append(r.faqs, faq)
	return nil
}

func (r *fakeFaqRepo) FindOne(context.Context, ...specification.Specification) (*entity.Faq, error) {
	return nil, nil
}

func (r *fakeFaqRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Faq, error) {
	limit := len(r.faqs)
	for _, spec := range specs {
		if l, ok := spec.(specification.Limit); ok && l.N < limit {
			limit = l.N
		}
	}
	return r.faqs[:limit], nil
}

func (r *fakeFaqRepo) Count(context.Context, ...specification.Specification) (int64, error) {
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

type stubGenerator struct {
	output string
	err    error
}

func (p *stubGenerator) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return p.output, p.err
}

func (p *stubGenerator) Generate(context.Context, string, ...llm.Option) (string, error) {
	return p.output, p.err
}

func emptyKB() *fakeUowFactory {
	return &fakeUowFactory{uow: &fakeUow{faqRepo: &fakeFaqRepo{}}}
}

func TestQuestionsStaticFallbackWhenAllTiersEmpty(t *testing.T) {
	gen := NewGenerator(nil, emptyKB(), logger.NewNopLogger())

	questions := gen.Questions(context.Background(), "Billing issue", 3)

	assert.Equal(t, constant.FallbackQuestions["Billing"][:3], questions)
}

func TestQuestionsUnknownCategoryFallsBackToGeneral(t *testing.T) {
	gen := NewGenerator(nil, emptyKB(), logger.NewNopLogger())

	questions := gen.Questions(context.Background(), "something else entirely", 3)

	assert.Equal(t, constant.FallbackQuestions["General"][:3], questions)
}

func TestQuestionsGeneratedLinesAreValidatedAndTrimmed(t *testing.T) {
	provider := &stubGenerator{output: "1. How do I update my payment method online?\n- short?\nThis line has no question mark at all\n• When will my subscription renew next month?"}
	gen := NewGenerator(provider, emptyKB(), logger.NewNopLogger())

	questions := gen.Questions(context.Background(), "Billing", 3)

	require.Len(t, questions, 3)
	assert.Equal(t, "How do I update my payment method online?", questions[0])
	assert.Equal(t, "When will my subscription renew next month?", questions[1])
	// Third slot comes from the static backstop.
	assert.Equal(t, constant.FallbackQuestions["Billing"][0], questions[2])
}

func TestQuestionsKnowledgeBaseTierFillsGaps(t *testing.T) {
	kb := &fakeUowFactory{uow: &fakeUow{faqRepo: &fakeFaqRepo{faqs: []*entity.Faq{
		{Question: "How do I download my invoice as a PDF file?"},
		{Question: "Can I switch my payment currency later?"},
	}}}}
	gen := NewGenerator(nil, kb, logger.NewNopLogger())

	questions := gen.Questions(context.Background(), "Billing", 3)

	require.Len(t, questions, 3)
	assert.Equal(t, "How do I download my invoice as a PDF file?", questions[0])
	assert.Equal(t, "Can I switch my payment currency later?", questions[1])
	assert.Equal(t, constant.FallbackQuestions["Billing"][0], questions[2])
}

func TestQuestionsNeverDuplicates(t *testing.T) {
	provider := &stubGenerator{output: constant.FallbackQuestions["General"][0] + "\n" + constant.FallbackQuestions["General"][0]}
	gen := NewGenerator(provider, emptyKB(), logger.NewNopLogger())

	questions := gen.Questions(context.Background(), "General", 3)

	seen := map[string]struct{}{}
	for _, q := range questions {
		_, dup := seen[q]
		assert.False(t, dup, "duplicate suggestion %q", q)
		seen[q] = struct{}{}
	}
	assert.LessOrEqual(t, len(questions), 3)
}

func TestCategoryKeyword(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Billing issue", "billing"},
		{"technical", "technical"},
		{"ACCOUNT questions", "account"},
		{"", "general"},
		{"   ", "general"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryKeyword(tt.category), "category %q", tt.category)
	}
}
