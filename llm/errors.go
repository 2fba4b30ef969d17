package llm

import (
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrTokenBudget is returned before any network call when prompt plus
// requested completion tokens exceed the configured budget.
var ErrTokenBudget = errors.New("token budget exceeded")

// AuthError means the credential was rejected (401/403)
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "completion auth failed: " + e.Message
}

// RateLimitError means the completion service throttled us (429)
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return "completion rate limited: " + e.Message
}

// QuotaError means the account balance is insufficient for the request
type QuotaError struct {
	Message string
}

func (e *QuotaError) Error() string {
	return "completion quota exhausted: " + e.Message
}

// TransportError covers network failures, unexpected statuses, and
// malformed response envelopes.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return "completion request failed: " + e.Message
}

// Classify maps an error from the completion SDK onto the failure taxonomy.
// Status codes decide auth and rate-limit failures; quota exhaustion is
// recognized by substring, matching how the upstream reports it.
func Classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return &TransportError{Message: err.Error()}
}

func classifyStatus(status int, message string) error {
	switch status {
	case 401, 403:
		return &AuthError{Message: message}
	case 429:
		return &RateLimitError{Message: message}
	}
	if strings.Contains(strings.ToLower(message), "insufficient") {
		return &QuotaError{Message: message}
	}
	return &TransportError{Message: message}
}
