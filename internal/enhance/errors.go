package enhance

import (
	"errors"
	"net/http"
)

// Kind classifies an enhancement failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindMisconfigured
	KindUnauthorized
	KindRateLimited
	KindUpstream
	KindNoContent
	KindNetwork
	// KindThrottled is the server's own per-client limit, as opposed to
	// KindRateLimited which comes from the completion API.
	KindThrottled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMisconfigured:
		return "misconfigured"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindUpstream:
		return "upstream"
	case KindNoContent:
		return "no_content"
	case KindNetwork:
		return "network"
	case KindThrottled:
		return "throttled"
	}
	return "unknown"
}

// Messages carried in the error body of the HTTP gateway. Clients match on
// them to tell failures sharing a status apart.
const (
	MsgPromptRequired  = "Prompt content is required"
	MsgTopicRequired   = "Topic is required"
	MsgNotConfigured   = "OpenAI API key not configured on server"
	MsgNoContent       = "No response content from OpenAI"
	MsgUnknownUpstream = "Unknown error"
	MsgThrottled       = "too many requests"

	// UpstreamPrefix starts every message relayed from the completion API.
	UpstreamPrefix = "OpenAI API Error: "
	// ServerErrorPrefix starts the message of a failure to reach the
	// completion API, or of any other unexpected server error.
	ServerErrorPrefix = "Server error: "
)

// Error is returned by every Gateway operation.
type Error struct {
	Kind Kind
	// Status is the upstream HTTP status for Unauthorized, RateLimited and
	// Upstream failures. Zero otherwise.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status the gateway endpoint answers with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited, KindThrottled:
		return http.StatusTooManyRequests
	case KindUpstream:
		if e.Status >= 500 && e.Status <= 599 {
			return e.Status
		}
	}
	return http.StatusInternalServerError
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}
