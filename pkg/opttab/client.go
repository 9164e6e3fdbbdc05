// Package opttab is a client for the Opttab User API.
//
// Every method maps to exactly one HTTP request against the configured base
// URL. Responses are returned as decoded JSON without local interpretation;
// non-2xx statuses surface as *HTTPError and malformed bodies as *DecodeError.
package opttab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/opttab/opttab-go/pkg/httpclient"
	"github.com/opttab/opttab-go/pkg/logging"
)

const (
	DefaultBaseURL = "https://opttab.com/api/v1/user"

	HeaderAPIKey      = "X-API-Key"
	HeaderContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// Object is an opaque JSON object as returned by the API.
// Numbers are decoded as json.Number.
type Object = map[string]any

// Client issues requests against the Opttab User API.
// It holds only immutable configuration and is safe for concurrent use.
type Client struct {
	baseURL string
	headers map[string]string
	http    httpclient.Client
	log     logging.Logger
}

type settings struct {
	baseURL   string
	http      httpclient.Client
	transport httpclient.Options
	log       logging.Logger
}

// Option customizes a Client at construction time.
type Option func(*settings)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(s *settings) { s.baseURL = baseURL }
}

// WithHTTPClient replaces the resty transport. Timeout and retry options are
// ignored when a custom transport is supplied.
func WithHTTPClient(c httpclient.Client) Option {
	return func(s *settings) { s.http = c }
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.transport.Timeout = d }
}

// WithRetry enables retries on transport errors and 5xx responses.
func WithRetry(count int, wait, maxWait time.Duration) Option {
	return func(s *settings) {
		s.transport.RetryCount = count
		s.transport.RetryWait = wait
		s.transport.RetryMaxWait = maxWait
	}
}

// WithLogger attaches a logger for per-request debug output.
func WithLogger(log logging.Logger) Option {
	return func(s *settings) { s.log = log }
}

// New builds a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, invalidInput("api key is required")
	}

	s := settings{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	baseURL, err := normalizeBaseURL(s.baseURL)
	if err != nil {
		return nil, err
	}

	transport := s.http
	if transport == nil {
		transport = httpclient.NewRestyClient(s.transport)
	}

	return &Client{
		baseURL: baseURL,
		headers: map[string]string{
			HeaderAPIKey:      apiKey,
			HeaderContentType: contentTypeJSON,
		},
		http: transport,
		log:  logging.OrNop(s.log),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return "", invalidInput("base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", invalidInput("parse base url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", invalidInput("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return "", invalidInput("base url %q has no host", raw)
	}
	return raw, nil
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Headers returns a copy of the header set attached to every request.
func (c *Client) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("opttab: encode %s %s body: %w", method, path, err)
		}
		payload = raw
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:  method,
		URL:     c.baseURL + path,
		Headers: c.Headers(),
		Query:   query,
		Body:    payload,
	})
	if err != nil {
		c.log.DebugObj("opttab request failed", "opttab_request", map[string]any{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		})
		return fmt.Errorf("opttab: %s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	c.log.DebugObj("opttab request completed", "opttab_request", map[string]any{
		"method":     method,
		"path":       path,
		"status":     status,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if status < 200 || status >= 300 {
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: status,
			Body:       resp.Body(),
		}
	}

	if err := decodeJSON(resp.Body(), out); err != nil {
		return &DecodeError{Path: path, Body: resp.Body(), Err: err}
	}
	return nil
}

func decodeJSON(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty response body")
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
