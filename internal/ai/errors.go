package ai

import (
	"errors"
	"strings"
)

// ErrDisabled signals that no assistant credentials are configured.
var ErrDisabled = errors.New("ai assistant disabled")

// ErrEmptyResponse signals the provider returned no usable content.
var ErrEmptyResponse = errors.New("ai empty response")

// Retryable reports whether an assistant error is worth retrying. Provider
// quota and transient server errors surface as status codes in the message.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "status 429") ||
		strings.Contains(msg, "status 500") ||
		strings.Contains(msg, "status 503") ||
		strings.Contains(msg, "rate limit")
}
