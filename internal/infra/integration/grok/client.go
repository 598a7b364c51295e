package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	maxAttempts    = 3
	backoffStep    = 1500 * time.Millisecond
	requestTimeout = 30 * time.Second
	excerptLimit   = 400
)

var (
	// ErrMissingAPIKey is a configuration fault: no network call is ever
	// attempted without a credential.
	ErrMissingAPIKey = errors.New("grok: XAI_API_KEY not set")

	// ErrRetryExhausted means every attempt hit a transport error or a
	// transient status.
	ErrRetryExhausted = errors.New("grok: retry limit exceeded")
)

// APIError is a non-retryable endpoint rejection, surfaced with its context.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("grok: api error %d: %s", e.Status, e.Body)
}

// Client talks to an xAI-style completion service: /v1/chat/completions as
// the primary endpoint and /v1/responses as the fallback shape.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	logger  *zap.Logger

	// overridable in tests to skip real backoff waits
	sleep func(time.Duration)
}

func NewClient(baseURL, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
		sleep:   time.Sleep,
	}, nil
}

// Chat calls /v1/chat/completions with up to 3 attempts. Transport errors and
// transient statuses (429, 5xx) consume an attempt with linearly increasing
// backoff; any other non-200 fails immediately. A 200 never fails, even with
// empty content, so the caller can apply its own fallback.
func (c *Client) Chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	payload := chatRequest{
		Model:           c.model,
		Messages:        messages,
		Temperature:     temperature,
		MaxOutputTokens: maxTokens,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return "", err
		}
		c.setHeaders(req)

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Warn("chat attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			llmRequestsTotal.WithLabelValues("chat", "transport_error").Inc()
			c.backoff(attempt)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		c.logger.Info("chat attempt",
			zap.Int("attempt", attempt),
			zap.Int("status", resp.StatusCode),
			zap.String("body", excerpt(body)),
		)
		llmRequestsTotal.WithLabelValues("chat", strconv.Itoa(resp.StatusCode)).Inc()

		switch {
		case resp.StatusCode == http.StatusOK:
			return extractText(body), nil
		case isTransient(resp.StatusCode):
			c.backoff(attempt)
			continue
		default:
			return "", &APIError{Status: resp.StatusCode, Body: string(body)}
		}
	}

	return "", ErrRetryExhausted
}

// Respond calls /v1/responses once, no retry loop, failing fast on any
// non-success status.
func (c *Client) Respond(ctx context.Context, input string, temperature float64, maxTokens int) (string, error) {
	payload := responsesRequest{
		Model:           c.model,
		Input:           input,
		Temperature:     temperature,
		MaxOutputTokens: maxTokens,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal responses request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/responses", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		llmRequestsTotal.WithLabelValues("responses", "transport_error").Inc()
		return "", fmt.Errorf("responses request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	c.logger.Info("responses call",
		zap.Int("status", resp.StatusCode),
		zap.String("body", excerpt(body)),
	)
	llmRequestsTotal.WithLabelValues("responses", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var response responsesResponse
	if err := json.Unmarshal(body, &response); err == nil && response.OutputText != "" {
		return response.OutputText, nil
	}
	return string(body), nil
}

// backoff waits 1.5s * attempt and counts the retry.
func (c *Client) backoff(attempt int) {
	llmRetriesTotal.WithLabelValues("chat").Inc()
	c.sleep(backoffStep * time.Duration(attempt))
}

func isTransient(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// extractText runs the ordered extraction strategies over a 200 body:
// chat shape, then responses shape, then the raw body verbatim so the caller
// can attempt its own recovery.
func extractText(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err == nil && len(chat.Choices) > 0 {
		return chat.Choices[0].Message.Content
	}

	var alt responsesResponse
	if err := json.Unmarshal(body, &alt); err == nil {
		return alt.OutputText
	}

	return string(body)
}

// setHeaders centralizes the required headers
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Leadflow/1.0")
}

func excerpt(body []byte) string {
	if len(body) > excerptLimit {
		return string(body[:excerptLimit])
	}
	return string(body)
}
