package llm

import (
	"encoding/json"
	"net/http"
)

const (
	anthropicVersion          = "2023-06-01"
	anthropicDefaultMaxTokens = 4096
)

// anthropicProvider speaks the messages schema with a content-array response.
type anthropicProvider struct{}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (anthropicProvider) Name() string             { return ProviderAnthropic }
func (anthropicProvider) RequiresModel() bool      { return true }
func (anthropicProvider) DefaultAPIKeyEnv() string { return "ANTHROPIC_API_KEY" }

func (anthropicProvider) EncodeRequest(prompt string, opts RequestOptions) ([]byte, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	return json.Marshal(anthropicRequest{
		Model:     opts.Model,
		MaxTokens: maxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
}

func (anthropicProvider) Authorize(h http.Header, apiKey string) {
	h.Set("x-api-key", apiKey)
	h.Set("anthropic-version", anthropicVersion)
}

func (anthropicProvider) DecodeResponse(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	for _, block := range resp.Content {
		if (block.Type == "text" || block.Type == "") && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", nil
}
