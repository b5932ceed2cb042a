package editor

import (
	"errors"

	"github.com/promptstudio/promptstudio-go/internal/enhance"
)

const (
	MsgEnhanced      = "Prompt enhanced successfully!"
	MsgApplied       = "Enhancement applied!"
	MsgEmptyContent  = "Please enter some content to enhance"
	MsgIncomplete    = "Please fill in title and content"
	MsgMisconfigured = "AI enhancement is not configured on the server. Ask the operator to set the completion API key."
	MsgUnauthorized  = "Invalid completion API key. Ask the operator to check the server credential."
	MsgRateLimited   = "Completion API rate limit exceeded. Please try again in a few minutes."
	MsgNetwork       = "Network error. Please check your internet connection and try again."
	MsgThrottled     = "Too many enhancement requests. Please wait a moment and try again."
)

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrEmptyContent):
		return MsgEmptyContent
	case errors.Is(err, ErrIncomplete):
		return MsgIncomplete
	}

	switch enhance.KindOf(err) {
	case enhance.KindInvalidInput:
		return MsgEmptyContent
	case enhance.KindMisconfigured:
		return MsgMisconfigured
	case enhance.KindUnauthorized:
		return MsgUnauthorized
	case enhance.KindRateLimited:
		return MsgRateLimited
	case enhance.KindNetwork:
		return MsgNetwork
	case enhance.KindThrottled:
		return MsgThrottled
	}
	return "Failed to enhance prompt: " + err.Error()
}
