package logos

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// ClientOptions configures the provider HTTP client.
type ClientOptions struct {
	Timeout   time.Duration // per-request timeout, default 6s
	Delay     time.Duration // polite delay between requests, default 250ms
	UserAgent string
}

// Client is a paced HTTP client for the logo providers. Requests are
// strictly sequential; the limiter enforces the inter-request delay.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewClient builds a client with defaults filled in.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 6 * time.Second
	}
	if opts.Delay <= 0 {
		opts.Delay = 250 * time.Millisecond
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "mapdata-cli/1.0"
	}
	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Every(opts.Delay), 1),
		userAgent: opts.UserAgent,
	}
}

// FetchBinary GETs the URL and returns the body when the response is a
// usable binary: status 200, non-empty, and not text/html (providers answer
// misses with HTML error pages).
func (c *Client) FetchBinary(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return nil, eris.Errorf("fetch %s: got html, not an image", rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "read body from %s", rawURL)
	}
	if len(body) == 0 {
		return nil, eris.Errorf("fetch %s: empty body", rawURL)
	}
	return body, nil
}
