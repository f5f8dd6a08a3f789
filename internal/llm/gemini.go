package llm

import (
	"encoding/json"
	"net/http"
)

// geminiProvider speaks the generateContent schema: a contents/parts request and a
// multi-candidate response.
type geminiProvider struct{}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (geminiProvider) Name() string             { return ProviderGemini }
func (geminiProvider) RequiresModel() bool      { return false }
func (geminiProvider) DefaultAPIKeyEnv() string { return "GEMINI_API_KEY" }

func (geminiProvider) EncodeRequest(prompt string, opts RequestOptions) ([]byte, error) {
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if opts.MaxTokens > 0 {
		req.GenerationConfig = &geminiGenerationConfig{MaxOutputTokens: opts.MaxTokens}
	}
	return json.Marshal(req)
}

// Authorize sends the key as a header rather than the ?key= query parameter so it
// never shows up in URLs quoted by transport errors.
func (geminiProvider) Authorize(h http.Header, apiKey string) {
	h.Set("x-goog-api-key", apiKey)
}

func (geminiProvider) DecodeResponse(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	for _, c := range resp.Candidates {
		for _, p := range c.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", nil
}
