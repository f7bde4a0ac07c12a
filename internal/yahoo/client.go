package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	defaultQueryHost = "https://query1.finance.yahoo.com"
	defaultCookieURL = "https://fc.yahoo.com/"
	crumbPath        = "/v1/test/getcrumb"
)

// ErrUpstream marks any failure talking to Yahoo Finance: network errors,
// unexpected status codes, malformed payloads, unknown tickers. Callers
// treat it as opaque.
var ErrUpstream = errors.New("yahoo: upstream request failed")

// Client talks to the public Yahoo Finance JSON endpoints. It bootstraps
// the session cookie and API crumb lazily and refreshes them once when a
// request comes back unauthorized.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	queryHost  string
	cookieURL  string

	mu    sync.Mutex
	crumb string
}

// NewClient creates a client whose upstream calls are bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		timeout:    timeout,
		queryHost:  defaultQueryHost,
		cookieURL:  defaultCookieURL,
	}
}

// newCollector builds a scraping collector for one article fetch. Colly
// callbacks stick to the collector, so each fetch gets its own.
func (c *Client) newCollector() *colly.Collector {
	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.Async(false),
	)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       500 * time.Millisecond,
	})
	collector.SetRequestTimeout(c.timeout)
	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", NextUserAgent())
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	return collector
}

// ensureCrumb returns the cached crumb, bootstrapping the session on first
// use. Yahoo sets the required cookie on any fc.yahoo.com response.
func (c *Client) ensureCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.crumb != "" {
		return c.crumb, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cookieURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", NextUserAgent())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	// The response itself is a 404; only the Set-Cookie matters.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.queryHost+crumbPath, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", NextUserAgent())
	resp, err = c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: crumb endpoint returned status %d", ErrUpstream, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.Contains(crumb, "<") {
		return "", fmt.Errorf("%w: empty or invalid crumb", ErrUpstream)
	}
	c.crumb = crumb
	return crumb, nil
}

func (c *Client) invalidateCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

// getJSON performs a GET against a query endpoint and decodes the JSON
// payload into out. When withCrumb is set the session crumb is attached
// and refreshed once on a 401/403 response.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, withCrumb bool, out any) error {
	for attempt := 0; ; attempt++ {
		vals := url.Values{}
		for k, vs := range params {
			vals[k] = vs
		}
		if withCrumb {
			crumb, err := c.ensureCrumb(ctx)
			if err != nil {
				return err
			}
			vals.Set("crumb", crumb)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryHost+path+"?"+vals.Encode(), nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		req.Header.Set("User-Agent", NextUserAgent())
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		if withCrumb && attempt == 0 &&
			(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.invalidateCrumb()
			continue
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return fmt.Errorf("%w: %s returned status %d", ErrUpstream, path, resp.StatusCode)
		}

		err = decodeJSON(resp.Body, out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
		}
		return nil
	}
}

func decodeJSON(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	return dec.Decode(out)
}

// apiError is the error object embedded in every query envelope.
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) wrap() error {
	return fmt.Errorf("%w: %s: %s", ErrUpstream, e.Code, e.Description)
}
