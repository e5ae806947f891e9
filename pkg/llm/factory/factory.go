package factory

import (
	"csupport-chat-be/pkg/llm"
	"csupport-chat-be/pkg/llm/gemini"
	"csupport-chat-be/pkg/llm/ollama"
	"csupport-chat-be/pkg/llm/openai"
)

// ProviderSet bundles the configured generative backends for the answer
// chain. Secondary is nil when no OpenAI key is configured; Local is always
// constructed (Ollama needs no credentials) but only consulted when
// Secondary is absent.
type ProviderSet struct {
	Primary   llm.LLMProvider // Gemini
	Secondary llm.LLMProvider // OpenAI, key-gated
	Local     llm.LLMProvider // Ollama
}

func NewProviderSet(geminiKey, openaiKey, openaiModel, ollamaBaseURL, ollamaModel string) *ProviderSet {
	set := &ProviderSet{
		Primary: gemini.NewGeminiProvider(geminiKey),
	}

	if openaiKey != "" {
		set.Secondary = openai.NewOpenAIProvider(openaiKey, openaiModel)
	}

	if ollamaBaseURL == "" {
		ollamaBaseURL = "http://localhost:11434" // Default
	}
	set.Local = ollama.NewOllamaProvider(ollamaBaseURL, ollamaModel)

	return set
}
