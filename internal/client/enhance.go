package client

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/promptstudio/promptstudio-go/internal/enhance"
	"github.com/promptstudio/promptstudio-go/internal/model"
)

// Enhance calls POST /enhance. Every failure is an *enhance.Error so callers
// can branch on enhance.KindOf.
func (c *Client) Enhance(ctx context.Context, text string) (model.EnhancementResult, error) {
	var out model.EnhancementResult
	if err := c.do(ctx, http.MethodPost, "/enhance", model.EnhanceRequest{Prompt: text}, &out); err != nil {
		return model.EnhancementResult{}, gatewayError(err)
	}
	return out, nil
}

// Ideas calls POST /ideas.
func (c *Client) Ideas(ctx context.Context, topic, category string) (model.IdeasResponse, error) {
	var out model.IdeasResponse
	if err := c.do(ctx, http.MethodPost, "/ideas", model.IdeasRequest{Topic: topic, Category: category}, &out); err != nil {
		return model.IdeasResponse{}, gatewayError(err)
	}
	return out, nil
}

// gatewayError maps an HTTP failure back onto the gateway's error kinds.
// Failures sharing a status are told apart by their message.
func gatewayError(err error) *enhance.Error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return &enhance.Error{Kind: enhance.KindNetwork, Message: err.Error(), Err: err}
	}

	kind := enhance.KindUpstream
	switch apiErr.Status {
	case http.StatusBadRequest:
		kind = enhance.KindInvalidInput
	case http.StatusUnauthorized:
		kind = enhance.KindUnauthorized
	case http.StatusTooManyRequests:
		kind = enhance.KindThrottled
		if strings.HasPrefix(apiErr.Message, enhance.UpstreamPrefix) {
			kind = enhance.KindRateLimited
		}
	case http.StatusInternalServerError:
		switch {
		case apiErr.Message == enhance.MsgNotConfigured:
			kind = enhance.KindMisconfigured
		case apiErr.Message == enhance.MsgNoContent:
			kind = enhance.KindNoContent
		case strings.HasPrefix(apiErr.Message, enhance.ServerErrorPrefix):
			kind = enhance.KindNetwork
		}
	}

	return &enhance.Error{Kind: kind, Status: apiErr.Status, Message: apiErr.Message, Err: apiErr}
}
