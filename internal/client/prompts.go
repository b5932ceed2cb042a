package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

// NotFound lets callers recognise a 404 without importing this package.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// PromptsClient is the remote side of the prompt collection.
type PromptsClient struct {
	c *Client
}

// Prompts returns the prompt persistence API of c.
func (c *Client) Prompts() *PromptsClient {
	return &PromptsClient{c: c}
}

func promptPath(id string) string {
	return "/api/v1/prompts/" + url.PathEscape(id)
}

// Create stores a new prompt for ownerID, who must be the signed-in user.
func (p *PromptsClient) Create(ctx context.Context, draft model.PromptDraft, ownerID string) (model.Prompt, error) {
	if err := p.c.checkOwner(ownerID); err != nil {
		return model.Prompt{}, err
	}

	var out model.Prompt
	if err := p.c.do(ctx, http.MethodPost, "/api/v1/prompts", draft, &out); err != nil {
		return model.Prompt{}, err
	}
	return out, nil
}

func (p *PromptsClient) Get(ctx context.Context, id string) (model.Prompt, error) {
	var out model.Prompt
	if err := p.c.do(ctx, http.MethodGet, promptPath(id), nil, &out); err != nil {
		if isNotFound(err) {
			return model.Prompt{}, ErrNotFound
		}
		return model.Prompt{}, err
	}
	return out, nil
}

// Update applies patch and returns the prompt as persisted by the server.
func (p *PromptsClient) Update(ctx context.Context, id string, patch model.PromptPatch) (model.Prompt, error) {
	if p.c.token == "" {
		return model.Prompt{}, ErrNoToken
	}

	var out model.Prompt
	if err := p.c.do(ctx, http.MethodPut, promptPath(id), patch, &out); err != nil {
		return model.Prompt{}, err
	}
	return out, nil
}

// Delete removes a prompt. A 404 is returned as an *APIError whose
// NotFound method reports true.
func (p *PromptsClient) Delete(ctx context.Context, id string) error {
	if p.c.token == "" {
		return ErrNoToken
	}
	return p.c.do(ctx, http.MethodDelete, promptPath(id), nil, nil)
}

// ListOwn returns ownerID's prompts, most recently updated first.
func (p *PromptsClient) ListOwn(ctx context.Context, ownerID string) ([]model.Prompt, error) {
	if err := p.c.checkOwner(ownerID); err != nil {
		return nil, err
	}

	var out []model.Prompt
	if err := p.c.do(ctx, http.MethodGet, "/api/v1/prompts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPublic returns the public library ordered by views.
func (p *PromptsClient) ListPublic(ctx context.Context) ([]model.Prompt, error) {
	var out []model.Prompt
	if err := p.c.do(ctx, http.MethodGet, "/api/v1/library", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordView counts one view of a public prompt.
func (p *PromptsClient) RecordView(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodPost, "/api/v1/library/"+url.PathEscape(id)+"/view", nil, nil)
}

// Profile returns the signed-in user's profile, creating it on first use.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	if c.token == "" {
		return model.Profile{}, ErrNoToken
	}

	var out model.Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, &out); err != nil {
		return model.Profile{}, err
	}
	return out, nil
}
