package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultMaxTokens = 4000
	defaultTimeout   = 120 * time.Second

	// Counting encoding; close enough across the models we route to
	budgetEncoding = "cl100k_base"
)

// Config holds the completion client settings
type Config struct {
	// BaseURL points at the completion service: the upstream API directly,
	// or a relay that injects the credential server-side.
	BaseURL string
	// APIKey is the bearer credential. Empty when going through a relay.
	APIKey       string
	DefaultModel string
	// TokenBudget caps prompt plus completion tokens per request; 0 disables
	TokenBudget int
	Timeout     time.Duration
	// Referer and Title identify this app to the completion service
	Referer string
	Title   string
}

// Client sends single chat-completion requests. No automatic retry: the
// caller decides whether a failed explore is retried.
type Client struct {
	api          *openai.Client
	defaultModel string
	budget       int
	timeout      time.Duration
	encoder      *tiktoken.Tiktoken
}

// New builds a completion client. A missing token encoder degrades to an
// approximate character-based count instead of failing startup.
func New(cfg Config) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Referer != "" || cfg.Title != "" {
		apiConfig.HTTPClient = &http.Client{
			Transport: &identifyingTransport{referer: cfg.Referer, title: cfg.Title},
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	encoder, err := tiktoken.GetEncoding(budgetEncoding)
	if err != nil {
		log.Warn().Err(err).Msg("token encoder unavailable, budget uses approximate counts")
		encoder = nil
	}

	return &Client{
		api:          openai.NewClientWithConfig(apiConfig),
		defaultModel: cfg.DefaultModel,
		budget:       cfg.TokenBudget,
		timeout:      timeout,
		encoder:      encoder,
	}
}

// Complete sends one prompt and returns the raw completion text. Failures
// come back as AuthError, RateLimitError, QuotaError, or TransportError.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	if model == "" {
		model = c.defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	if c.budget > 0 {
		promptTokens := c.countTokens(prompt)
		if promptTokens+maxTokens > c.budget {
			return "", fmt.Errorf("%w: prompt %d tokens + %d requested > budget %d",
				ErrTokenBudget, promptTokens, maxTokens, c.budget)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		classified := Classify(err)
		log.Error().Err(classified).Str("model", model).Msg("completion request failed")
		return "", classified
	}

	if len(resp.Choices) == 0 {
		return "", &TransportError{Message: "empty completion: no choices returned"}
	}

	return resp.Choices[0].Message.Content, nil
}

// identifyingTransport adds the HTTP-Referer and X-Title headers the
// completion service uses to attribute traffic.
type identifyingTransport struct {
	referer string
	title   string
}

func (t *identifyingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.referer != "" {
		req.Header.Set("HTTP-Referer", t.referer)
	}
	if t.title != "" {
		req.Header.Set("X-Title", t.title)
	}
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) countTokens(text string) int {
	if c.encoder != nil {
		return len(c.encoder.Encode(text, nil, nil))
	}
	// Rough heuristic: about four characters per token
	return len(text)/4 + 1
}
