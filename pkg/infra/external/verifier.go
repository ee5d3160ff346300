package external

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/rankguard/pkg/domain/types"
)

const (
	DefaultSearchEndpoint = "https://dblp.org/search/publ/api"
	DefaultTimeout        = 10 * time.Second
	DefaultUserAgent      = "rankguard (+https://github.com/m-mizutani/rankguard)"

	// maxBodySize bounds the DBLP response we are willing to decode
	maxBodySize = 4 << 20
)

// Verifier checks homepages and DBLP author entries over HTTP
type Verifier struct {
	client         *http.Client
	timeout        time.Duration
	searchEndpoint string
	userAgent      string
}

// Option is a functional option for Verifier configuration
type Option func(*Verifier)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(v *Verifier) {
		v.client = client
	}
}

// WithTimeout bounds every outgoing request
func WithTimeout(timeout time.Duration) Option {
	return func(v *Verifier) {
		v.timeout = timeout
	}
}

// WithSearchEndpoint sets the DBLP publication search API endpoint
func WithSearchEndpoint(endpoint string) Option {
	return func(v *Verifier) {
		v.searchEndpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent header of outgoing requests
func WithUserAgent(userAgent string) Option {
	return func(v *Verifier) {
		v.userAgent = userAgent
	}
}

// New creates a Verifier
func New(opts ...Option) *Verifier {
	v := &Verifier{
		client:         &http.Client{},
		timeout:        DefaultTimeout,
		searchEndpoint: DefaultSearchEndpoint,
		userAgent:      DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Probe reports whether homepage answers a GET with a 2xx status within the
// timeout. Any failure is reported as false.
func (v *Verifier) Probe(ctx context.Context, homepage string) bool {
	resp, err := v.get(ctx, homepage)
	if err != nil {
		return v.toNegative(ctx, goerr.Wrap(err, "homepage probe failed", goerr.V("url", homepage)))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if !isSuccess(resp.StatusCode) {
		return v.toNegative(ctx, goerr.New("homepage returned non-success status",
			goerr.V("url", homepage),
			goerr.V("status", resp.StatusCode),
		))
	}

	return true
}

// CompletionCount asks the DBLP search API how many author entries match
// name and returns result.completions.@total. Any failure, including a
// response without that field, is reported as 0, which callers treat the
// same as "no match".
func (v *Verifier) CompletionCount(ctx context.Context, name string) int {
	count, err := v.completionCount(ctx, name)
	if err != nil {
		v.toNegative(ctx, err)
		return 0
	}
	return count
}

func (v *Verifier) completionCount(ctx context.Context, name string) (int, error) {
	endpoint, err := url.Parse(v.searchEndpoint)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid DBLP search endpoint", goerr.V("endpoint", v.searchEndpoint))
	}
	q := endpoint.Query()
	q.Set("q", "author:"+name+":")
	q.Set("format", "json")
	endpoint.RawQuery = q.Encode()

	resp, err := v.get(ctx, endpoint.String())
	if err != nil {
		return 0, goerr.Wrap(err, "DBLP lookup failed", goerr.V("name", name))
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return 0, goerr.New("DBLP returned non-success status",
			goerr.V("name", name),
			goerr.V("status", resp.StatusCode),
		)
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return 0, goerr.Wrap(err, "failed to decode DBLP response", goerr.V("name", name))
	}
	if body.Result.Completions.Total == nil {
		return 0, goerr.New("DBLP response has no completion count", goerr.V("name", name))
	}

	total := int(*body.Result.Completions.Total)
	if total < 0 {
		return 0, goerr.New("DBLP returned a negative completion count",
			goerr.V("name", name),
			goerr.V("total", total),
		)
	}

	return total, nil
}

func (v *Verifier) get(ctx context.Context, target string) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		cancel()
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		cancel()
		return nil, goerr.Wrap(err, "failed to send request")
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// toNegative is the single place where an external failure is turned into a
// negative result. The error is logged and dropped.
func (v *Verifier) toNegative(ctx context.Context, err error) bool {
	err = goerr.Wrap(err, "external service unavailable", goerr.T(types.ErrTagExternalUnavailable))
	ctxlog.From(ctx).Warn("External check failed", "error", err)
	return false
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

type searchResponse struct {
	Result struct {
		Completions struct {
			Total *flexInt `json:"@total"`
		} `json:"completions"`
	} `json:"result"`
}

// flexInt accepts both 3 and "3"; DBLP encodes counts as strings
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.Atoi(s)
		if err != nil {
			return goerr.Wrap(err, "completion count is not an integer", goerr.V("value", s))
		}
		*n = flexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return goerr.Wrap(err, "completion count is not an integer", goerr.V("value", string(data)))
	}
	*n = flexInt(v)
	return nil
}
