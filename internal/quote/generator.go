// Package quote produces the daily quote text: an AI-generated line when the
// configured chat-completions endpoint cooperates, a curated fallback line
// when it does not.
package quote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/KaungMyatSoe11/dev-quote-bot/internal/config"
)

const (
	maxAttempts    = 3
	retryBaseDelay = 600 * time.Millisecond
)

// sentinelTokens are control markers some generation backends leak into
// their output. They are removed by literal substring match.
var sentinelTokens = []string{
	"<|begin_of_text|>",
	"<|end_of_text|>",
	"<|eot_id|>",
	"<|start_header_id|>",
	"<|end_header_id|>",
	"<s>",
	"</s>",
}

// Generator calls a chat-completions endpoint to produce quote text.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	language    string
}

// NewGenerator builds a Generator from the AI config and language code.
// Without an API key the generator stays disabled and Generate always
// reports no result.
func NewGenerator(cfg config.AIConfig, language string) *Generator {
	g := &Generator{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		language:    language,
	}
	if cfg.APIKey != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		g.client = openai.NewClientWithConfig(cc)
	}
	return g
}

// Generate returns a cleaned quote for the given context lines, or "" when
// no usable result could be produced. It never returns an error: rate limits
// are retried up to maxAttempts with a growing delay, every other failure is
// logged and swallowed.
func (g *Generator) Generate(ctx context.Context, contextLines []string) string {
	if g.client == nil {
		slog.Warn("quote generation skipped, no API key configured")
		return ""
	}

	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(g.language, contextLines)},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			status, upstream := upstreamError(err)
			if status == http.StatusTooManyRequests && attempt < maxAttempts-1 {
				delay := retryBaseDelay * time.Duration(attempt+1)
				slog.Warn("generation rate limited", "attempt", attempt+1, "delay", delay)
				select {
				case <-time.After(delay):
					continue
				case <-ctx.Done():
					return ""
				}
			}
			slog.Error("quote generation failed", "err", err, "status", status, "upstream", upstream)
			return ""
		}
		if len(resp.Choices) == 0 {
			slog.Error("quote generation returned no choices")
			return ""
		}
		return Sanitize(resp.Choices[0].Message.Content)
	}
	return ""
}

// Sanitize strips known sentinel tokens and trims surrounding whitespace.
func Sanitize(s string) string {
	for _, tok := range sentinelTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.TrimSpace(s)
}

// upstreamError extracts the HTTP status and upstream message from a
// go-openai error, when the failure got as far as an HTTP response.
func upstreamError(err error) (int, string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Message
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, reqErr.Error()
	}
	return 0, ""
}
