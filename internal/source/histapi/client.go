package histapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mzidar/adriatic-eod/internal/source"
)

const dateLayout = "2006-01-02"

// Client queries one venue's history API. The base URL includes the venue's
// access-token path segment.
type Client struct {
	baseURL    string
	mic        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a history API client for one venue.
func NewClient(baseURL, mic string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		mic:     mic,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// SecurityHistory fetches the most recent security point in the window.
// Returns (nil, nil) when the venue has nothing for the window.
func (c *Client) SecurityHistory(ctx context.Context, isin string, w source.Window) (*SecurityRecord, error) {
	var resp securityHistoryResponse
	if err := c.get(ctx, "security-history", isin, w, &resp); err != nil {
		return nil, err
	}
	if len(resp.History) == 0 {
		return nil, nil
	}
	return &resp.History[0], nil
}

// IndexHistory fetches the most recent index point in the window.
// Returns (nil, nil) when the venue has nothing for the window.
func (c *Client) IndexHistory(ctx context.Context, isin string, w source.Window) (*IndexRecord, error) {
	var resp indexHistoryResponse
	if err := c.get(ctx, "index-history", isin, w, &resp); err != nil {
		return nil, err
	}
	if len(resp.History) == 0 {
		return nil, nil
	}
	return &resp.History[0], nil
}

func (c *Client) get(ctx context.Context, segment, isin string, w source.Window, out any) error {
	url := fmt.Sprintf("%s/%s/%s/%s/%s/%s/json",
		c.baseURL, segment, c.mic, isin,
		w.From.Format(dateLayout), w.Till.Format(dateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return source.Transientf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return source.Transientf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return source.Transientf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return source.Classify(resp.StatusCode, fmt.Errorf("%s %s: %s", segment, isin, http.StatusText(resp.StatusCode)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return source.Malformedf("decode %s response: %w", segment, err)
	}

	return nil
}
