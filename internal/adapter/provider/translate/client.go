// Package translate talks to the translation proxy used for out-of-vocabulary
// search queries.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/salita/internal/domain"
)

const (
	DefaultBaseURL    = "https://pinuno-translate-proxy.onrender.com"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
	maxBodySize       = 1 << 20
)

// Client posts {q, source, target} to the proxy and reads back a single
// translation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetryDelay sets the pause before the single retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient creates a Client for the default proxy URL.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	return NewClientWithURL(DefaultBaseURL, logger, opts...)
}

// NewClientWithURL creates a Client with a custom base URL (for testing).
func NewClientWithURL(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", "translate"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestBody struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Translate returns the proxy's translation of query. Failures are
// *domain.ServiceError values; a translation equal to the query is reported
// as unusable.
func (c *Client) Translate(ctx context.Context, query, sourceLang, targetLang string) (string, error) {
	payload, err := json.Marshal(requestBody{Q: query, Source: sourceLang, Target: targetLang})
	if err != nil {
		return "", fmt.Errorf("translate: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "translate request",
		slog.String("query", query),
		slog.String("source", sourceLang),
		slog.String("target", targetLang),
	)

	resp, err := c.doWithRetry(ctx, payload, query)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		c.log.ErrorContext(ctx, "translate request failed", slog.String("query", query), slog.String("error", err.Error()))
		return "", domain.NewServiceError(domain.ServiceErrorNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.WarnContext(ctx, "translate backend error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", strings.TrimSpace(string(body))),
		)
		return "", &domain.ServiceError{Kind: domain.ServiceErrorStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", domain.NewServiceError(domain.ServiceErrorNetwork, fmt.Errorf("read body: %w", err))
	}

	text, err := parseTranslation(body)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(text, strings.TrimSpace(query)) {
		return "", domain.NewServiceError(domain.ServiceErrorUnusable, errors.New("translation equals query"))
	}

	c.log.DebugContext(ctx, "translate response",
		slog.String("query", query),
		slog.String("translation", text),
	)
	return text, nil
}

// parseTranslation accepts {"translatedText": "..."} or an array whose first
// element carries "english" or "translatedText".
func parseTranslation(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", domain.NewServiceError(domain.ServiceErrorMalformed, errors.New("invalid json"))
	}

	root := gjson.ParseBytes(body)
	var field gjson.Result
	switch {
	case root.IsObject():
		field = root.Get("translatedText")
	case root.IsArray():
		first := root.Get("0")
		field = first.Get("english")
		if !field.Exists() {
			field = first.Get("translatedText")
		}
	default:
		return "", domain.NewServiceError(domain.ServiceErrorMalformed, errors.New("unexpected json shape"))
	}

	if field.Exists() && field.Type != gjson.String {
		return "", domain.NewServiceError(domain.ServiceErrorMalformed, errors.New("translation is not a string"))
	}
	text := strings.TrimSpace(field.String())
	if text == "" {
		return "", domain.NewServiceError(domain.ServiceErrorUnusable, errors.New("empty translation"))
	}
	return text, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, payload []byte, query string) (*http.Response, error) {
	resp, err := c.post(ctx, payload)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "translate retry", slog.String("query", query), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}
