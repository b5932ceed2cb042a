package enhance

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

const defaultIdeasCategory = "general"

func ideasInstruction(topic, category string) string {
	return `Generate 5 creative and effective AI prompt ideas for the topic "` + topic + `" in the category "` + category + `". Each prompt should be unique, specific, and optimized for AI interactions.

Return as JSON:
{
  "prompts": [
    {
      "title": "Brief descriptive title",
      "prompt": "The actual prompt text",
      "description": "What this prompt is useful for"
    }
  ]
}`
}

// Ideas asks the completion API for starting points on topic. A reply that
// cannot be read yields an empty list rather than an error.
func (g *Gateway) Ideas(ctx context.Context, topic, category string) (model.IdeasResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return model.IdeasResponse{}, newError(KindInvalidInput, MsgTopicRequired)
	}
	if !g.Configured() {
		return model.IdeasResponse{}, newError(KindMisconfigured, MsgNotConfigured)
	}
	if strings.TrimSpace(category) == "" {
		category = defaultIdeasCategory
	}

	content, err := g.complete(ctx, chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: ideasInstruction(topic, category)},
			{Role: "user", Content: "Generate prompt ideas for: " + topic},
		},
		Temperature: 0.8,
		MaxTokens:   1000,
	})
	if err != nil {
		g.logger.Warn("idea generation failed", "kind", KindOf(err), "error", err)
		return model.IdeasResponse{}, err
	}

	out := model.IdeasResponse{}
	if err := json.Unmarshal([]byte(stripFence(content)), &out); err != nil {
		g.logger.Debug("ideas reply was not JSON", "error", err)
		out.Prompts = nil
	}
	if out.Prompts == nil {
		out.Prompts = []model.PromptIdea{}
	}
	return out, nil
}
