package llm

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Provider names accepted in configuration.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// RequestOptions carries the per-request settings a provider may encode.
type RequestOptions struct {
	Model     string
	MaxTokens int
}

// Provider is one request/response schema of a text-generation API.
// Each implementation owns its request encoding, credential placement and
// response decoding; nothing probes fields across schemas.
type Provider interface {
	Name() string
	// RequiresModel reports whether the model must be named in the request body.
	RequiresModel() bool
	// DefaultAPIKeyEnv names the environment variable conventionally holding the key.
	DefaultAPIKeyEnv() string
	EncodeRequest(prompt string, opts RequestOptions) ([]byte, error)
	Authorize(h http.Header, apiKey string)
	// DecodeResponse returns the first generated text, or "" when the body holds none.
	DecodeResponse(body []byte) (string, error)
}

var providers = map[string]Provider{
	ProviderGemini:    geminiProvider{},
	ProviderAnthropic: anthropicProvider{},
	ProviderOpenAI:    openAIProvider{},
}

// Compile-time interface conformance checks.
var (
	_ Provider = geminiProvider{}
	_ Provider = anthropicProvider{}
	_ Provider = openAIProvider{}
)

// ProviderFor looks up a provider by name (case-insensitive).
func ProviderFor(name string) (Provider, error) {
	p, ok := providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q; available: %s", name, strings.Join(ProviderNames(), ", "))
	}
	return p, nil
}

// ProviderNames lists the registered provider names in sorted order.
func ProviderNames() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
