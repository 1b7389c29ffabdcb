package modeladapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/germanamz/openrouter/pkg/errs"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Auth holds authentication settings for an LLM provider API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// ModelAdapter holds the HTTP plumbing shared by API clients. Embed it in a
// concrete client struct to get auth, custom headers and JSON POST helpers.
// A ModelAdapter is read-only after construction and safe for concurrent use.
type ModelAdapter struct {
	Auth    Auth              // Authentication settings.
	BaseURL string            // API base URL (no trailing slash).
	Client  *http.Client      // HTTP client; falls back to http.DefaultClient.
	Headers map[string]string // Extra headers applied to every request.
}

// New creates a ModelAdapter with the given settings.
// A nil client falls back to http.DefaultClient at call time.
func New(baseURL string, auth Auth, client *http.Client) ModelAdapter {
	return ModelAdapter{
		Auth:    auth,
		BaseURL: baseURL,
		Client:  client,
	}
}

// httpClient returns the configured client or http.DefaultClient. No timeout
// is added; deadlines come from the request context.
func (a *ModelAdapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	return http.DefaultClient
}

// AuthHeader returns the header name and value carrying the API key. It
// returns empty strings when no key is configured.
func (a *ModelAdapter) AuthHeader() (string, string) {
	if a.Auth.Key == "" {
		return "", ""
	}

	header := a.Auth.Header
	if header == "" {
		header = "Authorization"
	}

	value := a.Auth.Key
	if header == "Authorization" {
		scheme := a.Auth.Scheme
		if scheme == "" {
			scheme = "Bearer"
		}

		value = scheme + " " + value
	} else if a.Auth.Scheme != "" {
		value = a.Auth.Scheme + " " + value
	}

	return header, value
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (a *ModelAdapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := a.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if name, value := a.AuthHeader(); name != "" {
		req.Header.Set(name, value)
	}

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *ModelAdapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostJSON marshals payload as JSON and sends a single POST to path with the
// given per-request header merged over the defaults. It returns the raw body
// of a 2xx response.
//
// Any other status yields an errs.ErrTransport error embedding the status code
// and the response body: re-encoded compactly when it is JSON, as plain text
// otherwise.
func (a *ModelAdapter) PostJSON(ctx context.Context, path string, payload any, header http.Header) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := a.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.Status("", resp.StatusCode, ErrorBody(respBody))
	}

	return respBody, nil
}

// ErrorBody renders an error response body for inclusion in an error message.
// Valid JSON is compacted; anything else is returned as text.
func ErrorBody(body []byte) string {
	if gjson.ValidBytes(body) {
		return string(pretty.Ugly(body))
	}

	return string(body)
}
