package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultRetryWait    = 500 * time.Millisecond
	DefaultRetryMaxWait = 5 * time.Second
)

// Options controls timeout and retry behaviour of the resty transport.
// Retries are disabled unless RetryCount is positive.
type Options struct {
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified options.
func NewRestyClient(opts Options) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(opts)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(Options{Timeout: timeout})
}

// newRestyBaseClient creates a new resty.Client from normalized options.
func newRestyBaseClient(opts Options) *resty.Client {
	opts = normalizeOptions(opts)

	c := resty.New()
	c.SetTimeout(opts.Timeout)
	if opts.RetryCount > 0 {
		c.SetRetryCount(opts.RetryCount)
		c.SetRetryWaitTime(opts.RetryWait)
		c.SetRetryMaxWaitTime(opts.RetryMaxWait)
		c.AddRetryCondition(retryOnServerError)
	}
	return c
}

func normalizeOptions(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = DefaultRetryWait
	}
	if opts.RetryMaxWait < opts.RetryWait {
		opts.RetryMaxWait = DefaultRetryMaxWait
		if opts.RetryMaxWait < opts.RetryWait {
			opts.RetryMaxWait = opts.RetryWait
		}
	}
	return opts
}

// retryOnServerError retries 5xx responses; resty retries transport errors on its own.
func retryOnServerError(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
}

// Do performs the request described by req.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		return nil, fmt.Errorf("request method is empty")
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParams(req.Query)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
