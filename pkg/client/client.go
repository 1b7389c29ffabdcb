// Package client is the low-level transport for the OpenRouter chat
// completions endpoint. It validates request parameters, builds headers and
// the wire payload, and performs a single POST per call.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/germanamz/openrouter/pkg/errs"
	"github.com/germanamz/openrouter/pkg/modeladapter"
	"github.com/germanamz/openrouter/pkg/modeladapter/usage"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the OpenRouter API host.
	DefaultBaseURL = "https://openrouter.ai"

	completionsPath = "/api/v1/chat/completions"
	op              = "client"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// HeaderParams are the optional client-identification headers.
type HeaderParams struct {
	Referer string // Sent as HTTP-Referer when set.
	Title   string // Sent as X-Title when set.
}

// Response is the normalized reply of a completion call.
type Response struct {
	// Content is choices[0].message.content, or nil when the reply has none.
	Content *string
	// Raw is the provider's full JSON body.
	Raw json.RawMessage
}

// Text returns the content or an empty string.
func (r *Response) Text() string {
	if r == nil || r.Content == nil {
		return ""
	}
	return *r.Content
}

// Usage returns the token accounting reported in the reply, if any.
func (r *Response) Usage() (usage.TokenCount, bool) {
	if r == nil {
		return usage.TokenCount{}, false
	}
	return usage.Parse(r.Raw)
}

// Client talks to the chat completions endpoint. It is immutable after New
// and safe for concurrent use.
type Client struct {
	modeladapter.ModelAdapter

	log *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL (no trailing slash).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.BaseURL = u }
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.Client = hc }
}

// WithLogger sets the logger used to report failed requests.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errs.Config(op, "apiKey is required and must be a string.")
	}

	c := &Client{
		ModelAdapter: modeladapter.New(DefaultBaseURL, modeladapter.Auth{Key: apiKey}, nil),
		log:          slog.Default(),
	}

	for _, o := range opts {
		o(c)
	}

	if c.log == nil {
		c.log = slog.Default()
	}

	return c, nil
}

// APIKey returns the key the client authenticates with.
func (c *Client) APIKey() string { return c.Auth.Key }

// Endpoint returns the URL of the chat completions endpoint.
func (c *Client) Endpoint() string { return c.BaseURL + completionsPath }

// Headers returns the request headers: bearer auth and JSON content type,
// plus HTTP-Referer and X-Title when provided.
func (c *Client) Headers(h HeaderParams) http.Header {
	hdr := make(http.Header)

	if name, value := c.AuthHeader(); name != "" {
		hdr.Set(name, value)
	}
	hdr.Set("Content-Type", "application/json")

	if h.Referer != "" {
		hdr.Set("HTTP-Referer", h.Referer)
	}
	if h.Title != "" {
		hdr.Set("X-Title", h.Title)
	}

	return hdr
}

// Complete validates p, sends it to the endpoint once, and returns the
// normalized reply. Request failures are logged and returned unchanged.
func (c *Client) Complete(ctx context.Context, p Params, h HeaderParams) (*Response, error) {
	payload, err := c.Payload(p)
	if err != nil {
		return nil, err
	}

	body, err := c.PostJSON(ctx, completionsPath, payload, c.Headers(h))
	if err != nil {
		c.log.ErrorContext(ctx, "chat completion failed",
			"endpoint", c.Endpoint(),
			"model", p.Model,
			"error", err,
		)
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, errs.Transport(op, "decode response", errInvalidJSON)
	}

	return &Response{
		Content: extractContent(body),
		Raw:     json.RawMessage(body),
	}, nil
}

// extractContent reads choices[0].message.content. A missing or null value
// yields nil; non-string values are returned as raw JSON text.
func extractContent(body []byte) *string {
	res := gjson.GetBytes(body, "choices.0.message.content")

	switch res.Type {
	case gjson.Null:
		return nil
	case gjson.String:
		s := res.Str
		return &s
	default:
		s := res.Raw
		return &s
	}
}
