package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type upstreamError struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// maxUpstreamBody bounds how much of a completion reply is read.
const maxUpstreamBody = 4 << 20

// complete sends one chat completion request and returns the first choice's
// content, which may be empty.
func (g *Gateway) complete(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: ServerErrorPrefix + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return "", &Error{Kind: KindNetwork, Message: ServerErrorPrefix + err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp.StatusCode, raw)
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &Error{Kind: KindNoContent, Message: MsgNoContent, Err: err}
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return decoded.Choices[0].Message.Content, nil
}

func statusError(status int, raw []byte) *Error {
	msg := MsgUnknownUpstream
	var body upstreamError
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != nil && strings.TrimSpace(body.Error.Message) != "" {
		msg = body.Error.Message
	}

	kind := KindUpstream
	switch status {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}

	return &Error{
		Kind:    kind,
		Status:  status,
		Message: UpstreamPrefix + msg,
		Err:     errors.New(msg),
	}
}
