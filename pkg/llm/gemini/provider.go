package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"csupport-chat-be/pkg/llm"
)

type GeminiProvider struct {
	APIKey string
	Client *http.Client

	// Model ids tried in order; the API versions behind them come and go.
	ModelIDs []string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		ModelIDs: []string{
			"gemini-2.5-flash",
			"gemini-2.5-pro",
			"gemini-2.0-flash",
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiChatParts struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []*geminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type geminiChatRequest struct {
	Contents []*geminiChatContent `json:"contents"`
}

type geminiChatCandidate struct {
	Content *geminiChatContent `json:"content"`
}

type geminiChatResponse struct {
	Candidates []*geminiChatCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if g.APIKey == "" {
		return "", fmt.Errorf("gemini: no API key configured")
	}

	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]*geminiChatContent, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		// Gemini uses "model" where everyone else says "assistant".
		if role == "assistant" || role == "system" {
			role = "model"
		}
		if msg.Role == "system" {
			// System instructions ride along as plain user content; the v1
			// generateContent endpoint has no dedicated system slot.
			role = "user"
		}
		contents = append(contents, &geminiChatContent{
			Parts: []*geminiChatParts{{Text: msg.Content}},
			Role:  role,
		})
	}

	modelIDs := g.ModelIDs
	if options.Model != "" {
		modelIDs = []string{options.Model}
	}

	var lastErr error
	for _, modelID := range modelIDs {
		answer, err := g.generateContent(ctx, modelID, contents)
		if err != nil {
			lastErr = err
			continue
		}
		if answer != "" {
			return answer, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("gemini: empty response from all model ids")
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (g *GeminiProvider) generateContent(ctx context.Context, modelID string, contents []*geminiChatContent) (string, error) {
	payload := geminiChatRequest{Contents: contents}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1/models/%s:generateContent", modelID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil || len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates in response")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
