package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want any
	}{
		{
			name: "401 is an auth failure",
			err:  &openai.APIError{HTTPStatusCode: 401, Message: "invalid key"},
			want: &AuthError{},
		},
		{
			name: "403 is an auth failure",
			err:  &openai.APIError{HTTPStatusCode: 403, Message: "forbidden"},
			want: &AuthError{},
		},
		{
			name: "429 is a rate limit",
			err:  &openai.APIError{HTTPStatusCode: 429, Message: "slow down"},
			want: &RateLimitError{},
		},
		{
			name: "insufficient balance is a quota failure",
			err:  &openai.APIError{HTTPStatusCode: 402, Message: "Insufficient credits"},
			want: &QuotaError{},
		},
		{
			name: "other statuses are transport failures",
			err:  &openai.APIError{HTTPStatusCode: 500, Message: "oops"},
			want: &TransportError{},
		},
		{
			name: "plain errors are transport failures",
			err:  errors.New("connection refused"),
			want: &TransportError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			switch tt.want.(type) {
			case *AuthError:
				var target *AuthError
				assert.True(t, errors.As(got, &target))
			case *RateLimitError:
				var target *RateLimitError
				assert.True(t, errors.As(got, &target))
			case *QuotaError:
				var target *QuotaError
				assert.True(t, errors.As(got, &target))
			case *TransportError:
				var target *TransportError
				assert.True(t, errors.As(got, &target))
			}
		})
	}
}

func TestCompleteBudgetExceeded(t *testing.T) {
	client := New(Config{
		BaseURL:     "http://localhost:1", // never reached
		TokenBudget: 10,
	})

	_, err := client.Complete(context.Background(), "some-model", strings.Repeat("word ", 200), 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenBudget))
}

func TestCompleteSuccess(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"here is your guide"}}]}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, DefaultModel: "fallback-model"})

	text, err := client.Complete(context.Background(), "", "tell me about Paris", 100)

	require.NoError(t, err)
	assert.Equal(t, "here is your guide", text)
	assert.Equal(t, "/chat/completions", gotPath)
}

func TestCompleteAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, DefaultModel: "m"})

	_, err := client.Complete(context.Background(), "", "prompt", 100)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, DefaultModel: "m"})

	_, err := client.Complete(context.Background(), "", "prompt", 100)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestIdentifyingHeaders(t *testing.T) {
	var referer, title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := New(Config{
		BaseURL:      server.URL,
		DefaultModel: "m",
		Referer:      "https://example.com",
		Title:        "Travel Guide",
	})

	_, err := client.Complete(context.Background(), "", "prompt", 100)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", referer)
	assert.Equal(t, "Travel Guide", title)
}
