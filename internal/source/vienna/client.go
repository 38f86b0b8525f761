package vienna

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mzidar/adriatic-eod/internal/source"
)

const exportDateLayout = "01/02/2006"

// Client downloads the historical-data export for one listing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a CSV export client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
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

// DailyExport fetches the export for a single day and returns its first
// data row. The range start and end both carry the same percent-encoded
// MM/DD/YYYY date; the venue is only ever asked for the current session.
func (c *Client) DailyExport(ctx context.Context, webID string, day time.Time) (Row, error) {
	date := url.QueryEscape(day.Format(exportDateLayout))
	exportURL := fmt.Sprintf(
		"%s/%s/historical-data/?c48840%%5BDOWNLOAD%%5D=csv&c48840%%5BDATETIME_TZ_END_RANGE%%5D=%s&c48840%%5BDATETIME_TZ_START_RANGE%%5D=%s",
		c.baseURL, webID, date, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, source.Transientf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, source.Transientf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, source.Transientf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, source.Classify(resp.StatusCode, fmt.Errorf("export %s: %s", webID, http.StatusText(resp.StatusCode)))
	}

	row, err := ParseExport(body)
	if err != nil {
		return nil, source.Malformedf("decode export for %s: %w", webID, err)
	}

	return row, nil
}
