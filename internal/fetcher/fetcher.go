// Package fetcher provides the network collaborator for retrieving search
// and detail pages. The rest of the system only ever sees already-fetched
// raw content.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/matwasilewski/data-vortex/internal/logger"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// DefaultRequestTimeout bounds a single page fetch.
const DefaultRequestTimeout = 30 * time.Second

// ErrTransport is returned when the request could not be completed at all.
var ErrTransport = errors.New("transport error")

// InvalidResponseError reports a non-success status from the target site.
// The crawl loop treats this as terminal for the current run.
type InvalidResponseError struct {
	Status int
	URL    string
}

// Error returns the error message.
func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response status %d from %s", e.Status, e.URL)
}

// RequestSpec fully describes one page fetch: target, query parameters and
// headers. Two specs with the same fingerprint are the same request.
type RequestSpec struct {
	URL     string
	Params  map[string]string
	Headers map[string]string
}

// Fingerprint returns a stable key for the request, used by the TTL cache.
func (s RequestSpec) Fingerprint() string {
	var b strings.Builder
	b.WriteString(s.URL)
	b.WriteString("?")
	b.WriteString(encodeSorted(s.Params))
	b.WriteString("|")
	b.WriteString(encodeSorted(s.Headers))
	return b.String()
}

// encodeSorted renders a string map in deterministic key order.
func encodeSorted(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, "&")
}

// Response is a raw fetched page.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the response carries the success status.
func (r *Response) OK() bool {
	return r.Status == http.StatusOK
}

// Client fetches pages described by a RequestSpec.
type Client interface {
	Fetch(ctx context.Context, spec RequestSpec) (*Response, error)
}

// HTTPClient is the net/http-backed Client.
type HTTPClient struct {
	client *http.Client
	log    logger.Interface
}

// NewHTTPClient creates a new HTTP client with the given request timeout.
func NewHTTPClient(timeout time.Duration, log logger.Interface) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch performs one GET described by spec and returns the raw response.
// Non-success statuses are returned to the caller, not retried here.
func (c *HTTPClient) Fetch(ctx context.Context, spec RequestSpec) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, spec.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	query := req.URL.Query()
	for key, value := range spec.Params {
		query.Set(key, value)
	}
	req.URL.RawQuery = query.Encode()

	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}

	c.log.Debug("fetching page", "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrTransport, err)
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}
