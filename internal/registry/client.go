// Package registry is the HTTP client of the CV registry served by
// internal/server. A Client is also a persistence.Adapter, so a store can
// save straight to a remote registry.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/persistence"
	"github.com/jonathan/cv-builder/internal/types"
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "cv-builder/1.0"

// Error represents a failed registry request.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("registry error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("registry error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Token is sent as a bearer token on every request when set.
	Token string
	Log   *zap.Logger
}

// Client talks to a CV registry.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	token     string
	log       *zap.Logger
}

var _ persistence.Adapter = (*Client)(nil)

// New returns a client for the registry at baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{URL: baseURL, Message: "invalid URL", Cause: err}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:      u,
		http:      &http.Client{Timeout: timeout},
		userAgent: ua,
		token:     opts.Token,
		log:       log.Named("registry"),
	}, nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.base.String() + "/api/" + strings.Join(escaped, "/")
}

// PDFURL returns the URL where the registry renders the PDF of id.
func (c *Client) PDFURL(id string) string {
	return c.endpoint("cv", id, "pdf")
}

// do sends a request and returns the body of a 2xx response. Other statuses
// become an *Error carrying the status code; 404 also matches
// persistence.ErrNotFound.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: endpoint, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, &Error{URL: endpoint, StatusCode: resp.StatusCode, Message: "not found", Cause: persistence.ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: endpoint, StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return data, nil
}

// Write stores snap under its id.
func (c *Client) Write(ctx context.Context, snap *types.Snapshot) error {
	raw, err := persistence.Encode(snap)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, c.endpoint("cv", snap.ID()), raw)
	return err
}

// Read fetches the snapshot stored under id.
func (c *Client) Read(ctx context.Context, id string) (*types.Snapshot, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint("cv", id), nil)
	if err != nil {
		return nil, err
	}
	return persistence.Decode(id, raw)
}

// Delete removes the snapshot stored under id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint("cv", id), nil)
	return err
}

// List returns the summaries of every stored CV, most recent first.
func (c *Client) List(ctx context.Context) ([]types.Summary, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint("cvs"), nil)
	if err != nil {
		return nil, err
	}
	var out []types.Summary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &Error{URL: c.endpoint("cvs"), Message: "invalid listing", Cause: err}
	}
	return out, nil
}

// Summaries is List for display: any failure is logged and yields an empty
// list.
func (c *Client) Summaries(ctx context.Context) []types.Summary {
	out, err := c.List(ctx)
	if err != nil {
		c.log.Warn("failed to list CVs", zap.Error(err))
		return []types.Summary{}
	}
	if out == nil {
		out = []types.Summary{}
	}
	return out
}

// Remove is Delete for display: it reports whether the CV was deleted and
// logs any failure instead of returning it.
func (c *Client) Remove(ctx context.Context, id string) bool {
	if err := c.Delete(ctx, id); err != nil {
		c.log.Warn("failed to delete CV", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}
