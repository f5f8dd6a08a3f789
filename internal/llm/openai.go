package llm

import (
	"encoding/json"
	"net/http"
)

// openAIProvider speaks the chat completions schema.
type openAIProvider struct{}

type openAIRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (openAIProvider) Name() string             { return ProviderOpenAI }
func (openAIProvider) RequiresModel() bool      { return true }
func (openAIProvider) DefaultAPIKeyEnv() string { return "OPENAI_API_KEY" }

func (openAIProvider) EncodeRequest(prompt string, opts RequestOptions) ([]byte, error) {
	return json.Marshal(openAIRequest{
		Model:     opts.Model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: opts.MaxTokens,
	})
}

func (openAIProvider) Authorize(h http.Header, apiKey string) {
	h.Set("Authorization", "Bearer "+apiKey)
}

func (openAIProvider) DecodeResponse(body []byte) (string, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", nil
}
