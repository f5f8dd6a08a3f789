// Package llm sends changelog prompts to a text-generation API and extracts the
// generated Markdown document from its reply.
package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperr "github.com/masmgr/gitlogue/internal/errors"
	"github.com/masmgr/gitlogue/internal/prompt"
)

const (
	// NoCommitsMessage is returned without contacting the API when there is nothing to summarize.
	NoCommitsMessage = "No commits found."
	// NoResponseMessage is returned when the API answered but produced no text.
	NoResponseMessage = "No response from API."

	maxResponseBytes = 8 << 20
	maxErrorBodyLen  = 512
)

// Config describes the endpoint and credential used for a request.
type Config struct {
	Provider  string
	Endpoint  string
	APIKey    string
	APIKeyEnv string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Option customizes a Requestor.
type Option func(*Requestor)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Requestor) {
		if c != nil {
			r.client = c
		}
	}
}

// WithWarn installs a callback for non-fatal conditions such as an empty reply.
func WithWarn(fn func(string)) Option {
	return func(r *Requestor) {
		r.warn = fn
	}
}

// Requestor issues a single changelog request per call. It never retries.
type Requestor struct {
	cfg      Config
	provider Provider
	client   *http.Client
	warn     func(string)
}

// NewRequestor validates cfg and builds a Requestor for its provider.
func NewRequestor(cfg Config, opts ...Option) (*Requestor, error) {
	p, err := ProviderFor(cfg.Provider)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Configuration, "invalid provider",
			"Set provider to one of: "+strings.Join(ProviderNames(), ", "))
	}

	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = p.DefaultAPIKeyEnv()
	}
	if cfg.APIKey == "" {
		return nil, apperr.New(apperr.MissingCredential,
			fmt.Sprintf("no API key found in environment variable %s", keyEnv),
			fmt.Sprintf("export %s=<your key>", keyEnv),
			"or add it to a .env file in the current directory",
		)
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, apperr.New(apperr.Configuration,
			fmt.Sprintf("no endpoint configured for provider %s", p.Name()),
			"Set endpoint in .gitlogue.yml or GITLOGUE_ENDPOINT",
		)
	}
	if p.RequiresModel() && strings.TrimSpace(cfg.Model) == "" {
		return nil, apperr.New(apperr.Configuration,
			fmt.Sprintf("provider %s requires a model", p.Name()),
			"Set model in .gitlogue.yml or GITLOGUE_MODEL",
		)
	}

	r := &Requestor{
		cfg:      cfg,
		provider: p,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Provider returns the provider the requestor encodes for.
func (r *Requestor) Provider() Provider {
	return r.provider
}

// RequestChangelog sends the prompt built from commits and returns the generated document.
// An empty commit list yields NoCommitsMessage without any network call. A successful
// reply that carries no text yields NoResponseMessage and a nil error.
func (r *Requestor) RequestChangelog(ctx context.Context, commits []string) (string, error) {
	if len(commits) == 0 {
		return NoCommitsMessage, nil
	}

	body, err := r.provider.EncodeRequest(prompt.Build(commits), RequestOptions{
		Model:     r.cfg.Model,
		MaxTokens: r.cfg.MaxTokens,
	})
	if err != nil {
		return "", apperr.Wrap(err, apperr.NetworkFailure, "failed to encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Wrap(err, apperr.Configuration, "invalid endpoint")
	}
	req.Header.Set("Content-Type", "application/json")
	r.provider.Authorize(req.Header, r.cfg.APIKey)

	logDebug("POST %s (provider=%s, %d commit lines, %d bytes)", r.cfg.Endpoint, r.provider.Name(), len(commits), len(body))
	start := time.Now()

	resp, err := r.client.Do(req)
	if err != nil {
		return "", apperr.Wrap(err, apperr.NetworkFailure, "request to API failed",
			"Check network connectivity and the configured endpoint")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperr.Wrap(err, apperr.NetworkFailure, "failed to read API response")
	}
	logDebug("API responded %s in %v (%d bytes)", resp.Status, time.Since(start), len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("API responded with status %s", resp.Status)
		if snippet := truncate(strings.TrimSpace(string(data)), maxErrorBodyLen); snippet != "" {
			msg += ": " + snippet
		}
		return "", apperr.New(apperr.NetworkFailure, msg,
			"Check the endpoint, model and API key")
	}

	text, err := r.provider.DecodeResponse(data)
	if err != nil {
		logDebug("decode %s response: %v", r.provider.Name(), err)
	}
	if err != nil || strings.TrimSpace(text) == "" {
		r.emitWarn("API response contained no generated text")
		return NoResponseMessage, nil
	}
	return text, nil
}

func (r *Requestor) emitWarn(msg string) {
	if r.warn != nil {
		r.warn(msg)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
