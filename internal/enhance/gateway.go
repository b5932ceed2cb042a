// Package enhance proxies prompt enhancement requests to an OpenAI-compatible
// chat completion API and normalizes whatever the model replies with.
package enhance

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

const enhanceInstruction = `You are an expert AI prompt engineer. Your task is to enhance and improve user prompts to make them more effective, clear, and specific.

Guidelines for enhancement:
1. Make prompts more specific and detailed
2. Add context where helpful
3. Include formatting instructions if beneficial
4. Suggest better structure and flow
5. Add examples or constraints when appropriate
6. Ensure clarity and remove ambiguity
7. Optimize for better AI responses

Return your response in this exact JSON format:
{
  "enhanced": "The improved version of the prompt",
  "improvements": [
    "List of specific improvements made",
    "Each improvement as a separate item",
    "Focus on what was changed and why"
  ],
  "suggestions": [
    "Additional suggestions for further improvement",
    "Tips for using this prompt effectively"
  ]
}`

// Config configures a Gateway. APIKey may be empty, in which case every
// call fails with KindMisconfigured.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds a single upstream call. Zero leaves it to the transport.
	Timeout time.Duration
	// HTTPClient overrides the client used for upstream calls.
	HTTPClient *http.Client
}

// Gateway is stateless; it is safe for concurrent use.
type Gateway struct {
	cfg      Config
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Gateway {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Gateway{
		cfg:      cfg,
		client:   client,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		logger:   logger.With("system", "enhance"),
	}
}

// Configured reports whether an API key is present.
func (g *Gateway) Configured() bool {
	return g.cfg.APIKey != ""
}

// Enhance rewrites text through the completion API. It makes at most one
// upstream call and none at all for blank input.
func (g *Gateway) Enhance(ctx context.Context, text string) (model.EnhancementResult, error) {
	if strings.TrimSpace(text) == "" {
		return model.EnhancementResult{}, newError(KindInvalidInput, MsgPromptRequired)
	}
	if !g.Configured() {
		return model.EnhancementResult{}, newError(KindMisconfigured, MsgNotConfigured)
	}

	start := time.Now()
	content, err := g.complete(ctx, chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: enhanceInstruction},
			{Role: "user", Content: "Please enhance this prompt:\n\n\"" + text + "\""},
		},
		Temperature: 0.7,
		MaxTokens:   1500,
	})
	if err != nil {
		g.logger.Warn("enhancement failed", "kind", KindOf(err), "error", err, "duration", time.Since(start))
		return model.EnhancementResult{}, err
	}
	if strings.TrimSpace(content) == "" {
		g.logger.Warn("enhancement returned no content", "duration", time.Since(start))
		return model.EnhancementResult{}, newError(KindNoContent, MsgNoContent)
	}

	r := parseReply(content)
	if !r.ok {
		g.logger.Debug("completion was not JSON, using raw text")
	}
	g.logger.Info("prompt enhanced", "duration", time.Since(start), "structured", r.ok)
	return normalize(r), nil
}
