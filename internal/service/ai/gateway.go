// Package ai talks to the OpenRouter chat-completion API. Upstream failures
// never escape as errors: they map to fixed user-facing warning strings so
// the conversation keeps flowing.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/sehatlabs/healthchat/internal/config"
	"github.com/sehatlabs/healthchat/internal/model/chat"
)

// User-facing warning strings returned in place of a model reply when the
// upstream call fails. The wording is part of the product surface.
const (
	WarnAuth      = "⚠️ API authentication failed. Please check your OpenRouter API key."
	WarnCredits   = "⚠️ API credits exhausted. Please add credits to your OpenRouter account."
	WarnRateLimit = "⚠️ Too many requests. Please wait a moment and try again."
	WarnTimeout   = "⚠️ Request timed out. Please try again."
	WarnGeneric   = "⚠️ Something went wrong, please try again."
)

// Gateway owns the configured OpenRouter client. It is constructed once at
// startup and injected into whoever needs completions; there is no ambient
// global client.
type Gateway struct {
	llm   *openai.LLM
	model string
}

// NewGateway builds a gateway from upstream configuration. It fails when no
// API key is configured.
func NewGateway(cfg config.UpstreamConfig) (*Gateway, error) {
	if !cfg.Enabled() {
		return nil, errors.New("upstream API key is not configured")
	}

	httpClient := &http.Client{
		Transport: &routingTransport{
			referer: cfg.SiteURL,
			title:   config.AppTitle,
			base:    http.DefaultTransport,
		},
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create openrouter client: %w", err)
	}

	return &Gateway{llm: llm, model: cfg.Model}, nil
}

// Model returns the fixed model identifier.
func (g *Gateway) Model() string {
	return g.model
}

// Complete sends the composed conversation to the model and returns the
// trimmed reply, or one of the fixed warning strings on failure.
func (g *Gateway) Complete(ctx context.Context, history []chat.Turn, userMessage string) string {
	callID := uuid.NewString()
	messages := composeMessages(history, userMessage)
	log.Printf("[gateway] call=%s model=%s messages=%d", callID, g.model, len(messages))

	resp, err := g.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(config.Temperature),
		llms.WithMaxTokens(config.MaxTokens),
	)
	if err != nil {
		warning := classifyFailure(err)
		log.Printf("[gateway] call=%s failed: %v", callID, err)
		return warning
	}

	if len(resp.Choices) == 0 {
		log.Printf("[gateway] call=%s returned no choices", callID)
		return WarnGeneric
	}

	reply := strings.TrimSpace(resp.Choices[0].Content)
	log.Printf("[gateway] call=%s ok, reply length=%d", callID, len(reply))
	return reply
}

// classifyFailure maps an upstream error to a warning string. Timeouts are
// recognised structurally first; everything else falls back to sniffing the
// error text, since the OpenAI-compatible client surfaces upstream statuses
// only inside the message.
func classifyFailure(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return WarnTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return WarnTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "authentication"):
		return WarnAuth
	case strings.Contains(msg, "402") || strings.Contains(msg, "credit"):
		return WarnCredits
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return WarnRateLimit
	case strings.Contains(msg, "timeout"):
		return WarnTimeout
	default:
		return WarnGeneric
	}
}

// routingTransport adds the OpenRouter attribution headers to every request.
type routingTransport struct {
	referer string
	title   string
	base    http.RoundTripper
}

func (t *routingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("HTTP-Referer", t.referer)
	cloned.Header.Set("X-Title", t.title)
	return t.base.RoundTrip(cloned)
}
