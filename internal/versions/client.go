// Package versions looks up the latest published versions of Python packages
// and the currently supported Python releases.
package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"golang.org/x/sync/semaphore"

	verrors "github.com/JonSteinn/vspy/internal/errors"
	"github.com/JonSteinn/vspy/internal/output"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Client issues GET requests and reports non-2xx responses as *errors.HTTPError.
type Client interface {
	// Get returns the response body as text.
	Get(ctx context.Context, url string) (string, error)

	// GetJSON decodes the response body into v.
	GetJSON(ctx context.Context, url string, v any) error
}

// PoolOptions configures a Pool.
type PoolOptions struct {
	// Timeout bounds each request attempt. Zero selects DefaultTimeout.
	Timeout time.Duration

	// Retries is the number of extra attempts after a transport error or 5xx.
	Retries int

	// RetryBackoff is the constant wait between attempts.
	RetryBackoff time.Duration

	// MaxConcurrent bounds in-flight requests. Zero selects DefaultMaxConcurrent.
	MaxConcurrent int

	// Doer replaces the underlying HTTP client, mainly for tests.
	Doer heimdall.Doer
}

const (
	// DefaultTimeout is the per-request timeout when none is configured.
	DefaultTimeout = 20 * time.Second

	// DefaultMaxConcurrent is the in-flight request bound when none is configured.
	DefaultMaxConcurrent = 8
)

// Pool is a Client that shares one connection pool across all requests of a
// run. Create it at the start of a run and Close it at the end.
//
// heimdall marks every request it sends with Close, which would open a new
// connection per request; the default Doer is wrapped to undo that so
// MaxIdleConnsPerHost applies. Retry backoff is a plain sleep in heimdall and
// does not watch the request context: a cancelled run still waits out the
// current backoff before the next attempt fails.
type Pool struct {
	client    *httpclient.Client
	transport *http.Transport
	sem       *semaphore.Weighted
}

// NewPool creates a Pool.
func NewPool(opts PoolOptions) *Pool {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}

	p := &Pool{sem: semaphore.NewWeighted(int64(opts.MaxConcurrent))}

	doer := opts.Doer
	if doer == nil {
		p.transport = http.DefaultTransport.(*http.Transport).Clone()
		p.transport.MaxIdleConnsPerHost = opts.MaxConcurrent
		doer = keepAliveDoer{&http.Client{Timeout: opts.Timeout, Transport: p.transport}}
	}

	clientOpts := []httpclient.Option{
		httpclient.WithHTTPClient(doer),
		httpclient.WithRetryCount(opts.Retries),
	}
	if opts.Retries > 0 {
		clientOpts = append(clientOpts, httpclient.WithRetrier(
			heimdall.NewRetrier(heimdall.NewConstantBackoff(opts.RetryBackoff, opts.RetryBackoff/4)),
		))
	}

	p.client = httpclient.NewClient(clientOpts...)
	p.client.AddPlugin(&requestLogger{})
	return p
}

// Get implements Client.
func (p *Pool) Get(ctx context.Context, url string) (string, error) {
	body, err := p.do(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON implements Client.
func (p *Pool) GetJSON(ctx context.Context, url string, v any) error {
	body, err := p.do(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// Close releases idle connections held by the pool. It is a no-op when a
// custom Doer was supplied.
func (p *Pool) Close() {
	if p.transport != nil {
		p.transport.CloseIdleConnections()
	}
}

func (p *Pool) do(ctx context.Context, url string) ([]byte, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer p.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	res, err := p.client.Do(req)
	if err != nil {
		// heimdall flattens attempt errors into strings, so cancellation has
		// to be recovered from the context.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("GET %s: %w", url, ctxErr)
		}
		return nil, verrors.NewConnectivityError(
			fmt.Sprintf("GET %s failed", url),
			map[string]string{"URL": url, "Cause": err.Error()},
			"check your network connection, or point sources.pypi and sources.downloads at a reachable mirror",
		)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &verrors.HTTPError{URL: url, StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("GET %s: %w", url, ctxErr)
		}
		return nil, fmt.Errorf("reading response from %s: %w: %v", url, verrors.ErrConnectivity, err)
	}
	return body, nil
}

// keepAliveDoer clears the Close flag heimdall sets on outgoing requests.
type keepAliveDoer struct {
	heimdall.Doer
}

func (d keepAliveDoer) Do(req *http.Request) (*http.Response, error) {
	req.Close = false
	return d.Doer.Do(req)
}

// requestLogger is a heimdall plugin that traces requests at debug level.
type requestLogger struct {
	started sync.Map
}

func (l *requestLogger) OnRequestStart(req *http.Request) {
	l.started.Store(req, time.Now())
	output.Debug("http request", "method", req.Method, "url", req.URL.String())
}

func (l *requestLogger) OnRequestEnd(req *http.Request, res *http.Response) {
	output.Debug("http response", "url", req.URL.String(), "status", res.StatusCode, "duration", l.elapsed(req))
}

func (l *requestLogger) OnError(req *http.Request, err error) {
	output.Debug("http error", "url", req.URL.String(), "error", err, "duration", l.elapsed(req))
}

func (l *requestLogger) elapsed(req *http.Request) time.Duration {
	v, ok := l.started.LoadAndDelete(req)
	if !ok {
		return 0
	}
	return time.Since(v.(time.Time))
}
