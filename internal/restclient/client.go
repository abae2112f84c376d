// README: Shared JSON-over-HTTP helper used by every outbound API client.
package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"voyage/internal/types"
)

// maxErrorBody caps how much of a failed response ends up in the error text.
const maxErrorBody = 512

// StatusError is returned for non-2xx responses. It unwraps to types.ErrUpstream.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s: status %d: %s", types.ErrUpstream, e.Service, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return types.ErrUpstream }

// StatusCode reports the HTTP status carried by err, or 0 when err is not a StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Client issues GET requests and decodes JSON bodies.
type Client struct {
	name  string
	httpc *http.Client
}

// New returns a Client whose errors are prefixed with name (e.g. "serpapi").
func New(name string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{name: name, httpc: &http.Client{Timeout: timeout}}
}

// GetJSON fetches baseURL?params and decodes the body into out.
// Transport failures and non-2xx statuses wrap types.ErrUpstream, undecodable
// bodies wrap types.ErrParse.
func (c *Client) GetJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, baseURL, params, nil, nil, out)
}

// Do is the general form used by callers that need headers or a form body.
func (c *Client) Do(ctx context.Context, method, baseURL string, params url.Values, header http.Header, body io.Reader, out any) error {
	target := baseURL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: do request: %v", types.ErrUpstream, c.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: read response: %v", types.ErrUpstream, c.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := raw
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return &StatusError{Service: c.name, Code: resp.StatusCode, Body: string(snippet)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", types.ErrParse, c.name, err)
	}
	return nil
}
