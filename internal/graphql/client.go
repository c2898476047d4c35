package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/logger"
	"github.com/takak2166/sitedata/internal/metrics"
)

// DefaultTimeout bounds a single request when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// Client sends GraphQL queries to a single content API endpoint
type Client struct {
	endpoint string
	http     HTTPDoer
	recorder metrics.Recorder
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

// WithTimeout sets the timeout of the default *http.Client.
// It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRecorder records one observation per request.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates a Client for endpoint
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		recorder: metrics.NoopRecorder{},
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Endpoint returns the URI queries are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type requestBody struct {
	Query string `json:"query"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Error  json.RawMessage `json:"error"`
	Errors json.RawMessage `json:"errors"`
}

// Request sends q and returns the raw "data" member of the response.
//
// GraphQL level errors reported in the envelope are logged and do not fail
// the call; the returned data may then be nil. Transport failures and
// undecodable responses are returned as errors. The HTTP status is not
// inspected.
func (c *Client) Request(ctx context.Context, q Query) (json.RawMessage, error) {
	start := time.Now()
	data, result, err := c.do(ctx, q)
	c.recorder.ObserveRequest(q.Name, time.Since(start), result)
	return data, err
}

func (c *Client) do(ctx context.Context, q Query) (json.RawMessage, metrics.Result, error) {
	logger.Debug("Sending GraphQL query", map[string]interface{}{
		"operation": q.Name,
		"endpoint":  c.endpoint,
	})

	payload, err := json.Marshal(requestBody{Query: q.Text})
	if err != nil {
		return nil, metrics.ResultFailed, errors.Wrap(errors.CategoryDecode, err, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, metrics.ResultFailed, errors.Wrap(errors.CategoryConfig, err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, metrics.ResultFailed, errors.Wrap(errors.CategoryNetwork, err, "graphql request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, metrics.ResultFailed, errors.Wrap(errors.CategoryDecode, err, "failed to decode graphql response")
	}

	result := metrics.ResultSuccess
	for _, reported := range []json.RawMessage{env.Error, env.Errors} {
		if isEmpty(reported) {
			continue
		}
		result = metrics.ResultGraphQLError
		logger.Error("GraphQL endpoint reported an error", errors.New(errors.CategoryGraphQL, string(reported)), map[string]interface{}{
			"operation": q.Name,
			"status":    resp.StatusCode,
		})
	}

	if isEmpty(env.Data) {
		return nil, result, nil
	}
	return env.Data, result, nil
}

func isEmpty(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
