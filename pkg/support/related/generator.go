package related

import (
	"context"
	"fmt"
	"strings"

	"csupport-chat-be/internal/constant"
	"csupport-chat-be/internal/pkg/logger"
	"csupport-chat-be/internal/repository/specification"
	"csupport-chat-be/internal/repository/unitofwork"
	"csupport-chat-be/pkg/llm"
)

const DefaultLimit = 3

// Generator produces the "related questions" suggestions attached to every
// reply. Three tiers: generative, knowledge base filtered by category
// keywords, then the static fallback lists. The static tier guarantees the
// result is never empty in steady state.
type Generator struct {
	provider   llm.LLMProvider // nil disables the generative tier
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *Generator {
	return &Generator{
		provider:   provider,
		uowFactory: uowFactory,
		logger:     log,
	}
}

// Questions returns up to limit suggestions for the category, deduplicated
// across tiers.
func (g *Generator) Questions(ctx context.Context, category string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := make([]string, 0, limit)
	seen := make(map[string]struct{})

	appendUnique := func(q string) {
		if len(result) >= limit {
			return
		}
		if _, dup := seen[q]; dup {
			return
		}
		seen[q] = struct{}{}
		result = append(result, q)
	}

	// Tier 1: freshly generated questions.
	for _, q := range g.generated(ctx, category, limit) {
		appendUnique(q)
	}

	// Tier 2: knowledge-base questions matching the category keywords.
	if len(result) < limit {
		for _, q := range g.fromKnowledgeBase(ctx, category, limit-len(result)) {
			appendUnique(q)
		}
	}

	// Tier 3: static fallback.
	if len(result) < limit {
		for _, q := range FallbackQuestions(category) {
			appendUnique(q)
		}
	}

	return result
}

func (g *Generator) generated(ctx context.Context, category string, limit int) []string {
	if g.provider == nil {
		return nil
	}

	keyword := CategoryKeyword(category)
	topic, ok := constant.CategoryTopics[keyword]
	if !ok {
		topic = constant.CategoryTopics["general"]
	}

	text, err := g.provider.Generate(ctx, buildPrompt(keyword, topic, limit))
	if err != nil {
		g.logger.Debug("RelatedQuestions", "Generative tier unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	questions := make([]string, 0, limit)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "0123456789.-*• ")
		line = strings.TrimSpace(line)
		if len(line) > 10 && strings.Contains(line, "?") {
			questions = append(questions, line)
		}
		if len(questions) >= limit {
			break
		}
	}
	return questions
}

func (g *Generator) fromKnowledgeBase(ctx context.Context, category string, limit int) []string {
	keywords := constant.CategoryKeywordMap[CategoryKeyword(category)]
	if len(keywords) == 0 {
		return nil
	}

	uow := g.uowFactory.NewUnitOfWork(ctx)
	faqs, err := uow.FaqRepository().FindAll(ctx,
		specification.QuestionContainsAny{Keywords: keywords},
		specification.RandomOrder{},
		specification.Limit{N: limit},
	)
	if err != nil {
		return nil
	}

	questions := make([]string, 0, len(faqs))
	for _, faq := range faqs {
		questions = append(questions, faq.Question)
	}
	return questions
}

func buildPrompt(keyword, topic string, limit int) string {
	title := FallbackKey(keyword)
	examples, ok := constant.CategoryExampleQuestions[title]
	if !ok {
		examples = constant.CategoryExampleQuestions["General"]
	}

	return fmt.Sprintf(`You are a customer support assistant. Generate %d common customer questions about %s category.

Category: %s
Topic: %s

Requirements:
- Questions MUST be directly related to %s category
- Questions should be practical and commonly asked by customers
- Each question should be 8-15 words
- Questions must end with a question mark
- Do NOT include numbering, bullets, or extra formatting

Examples for %s:
%s

Generate %d similar questions, one per line:`,
		limit, title, title, topic, title, title, examples, limit)
}
