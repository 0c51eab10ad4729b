package completion

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"log/slog"
)

// Message roles accepted by the completion service.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry in a completion conversation.
type Message struct {
	Role    string
	Content string
}

// Completer produces a single text completion for an ordered message list.
// Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, messages []Message, model string) (string, error)
}

// Error kinds surfaced to callers. Auth failures are never retried;
// ErrUnavailable means the retry budget was exhausted on transient failures.
var (
	ErrAuthFailed  = errors.New("completion service rejected credentials")
	ErrUnavailable = errors.New("completion service unavailable")
)

// CallRecorder receives the outcome of each completion attempt, typically a
// Prometheus collector. A nil recorder disables recording.
type CallRecorder interface {
	RecordCompletion(outcome string)
}

// Outcome labels reported to the CallRecorder.
const (
	OutcomeSuccess    = "success"
	OutcomeRetry      = "retry"
	OutcomeAuthFailed = "auth_failed"
	OutcomeExhausted  = "exhausted"
)

// Config holds connection and retry settings for the completion service.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Temperature  float32
	MaxTokens    int
	MaxAttempts  int
	RetryMinWait time.Duration
	RetryMaxWait time.Duration
}

// Client calls an OpenAI-compatible chat completion endpoint with bounded
// retries. Construct one per process and inject it; there is no package-level
// singleton.
type Client struct {
	api      *openai.Client
	cfg      Config
	logger   *slog.Logger
	recorder CallRecorder
}

// NewClient builds a Client for the configured endpoint. recorder may be nil.
func NewClient(cfg Config, logger *slog.Logger, recorder CallRecorder) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:      openai.NewClientWithConfig(apiCfg),
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
	}
}

// Complete sends the messages and returns the completion text. An empty model
// falls back to the configured default. Transient failures are retried with
// exponential backoff between the configured wait bounds; credential
// rejections surface immediately as ErrAuthFailed.
func (c *Client) Complete(ctx context.Context, messages []Message, model string) (string, error) {
	if model == "" {
		model = c.cfg.Model
	}

	request := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages:    toChatMessages(messages),
	}

	attempts := c.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, request)
		if err == nil {
			if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
				lastErr = errors.New("empty response from completion service")
			} else {
				c.record(OutcomeSuccess)
				return resp.Choices[0].Message.Content, nil
			}
		} else if isAuthError(err) {
			c.record(OutcomeAuthFailed)
			c.logger.Error("completion auth failure", "model", model, "error", err)
			return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
		} else {
			lastErr = err
		}

		if attempt == attempts {
			break
		}

		delay := c.backoff(attempt)
		c.record(OutcomeRetry)
		c.logger.Warn("completion call failed, retrying",
			"model", model,
			"attempt", attempt,
			"max_attempts", attempts,
			"delay_ms", delay.Milliseconds(),
			"error", lastErr)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.record(OutcomeExhausted)
	c.logger.Error("completion retries exhausted",
		"model", model,
		"attempts", attempts,
		"error", lastErr)
	return "", fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, attempts, lastErr)
}

// backoff doubles the minimum wait per attempt, caps it at the maximum wait,
// and adds up to 500ms of jitter.
func (c *Client) backoff(attempt int) time.Duration {
	delay := c.cfg.RetryMinWait * time.Duration(1<<uint(attempt-1))
	if delay > c.cfg.RetryMaxWait {
		delay = c.cfg.RetryMaxWait
	}
	if delay < 0 {
		delay = 0
	}
	return delay + time.Duration(rand.Intn(500))*time.Millisecond
}

func (c *Client) record(outcome string) {
	if c.recorder != nil {
		c.recorder.RecordCompletion(outcome)
	}
}

func toChatMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// isAuthError reports whether the API rejected our credentials.
func isAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden
	}

	return false
}
