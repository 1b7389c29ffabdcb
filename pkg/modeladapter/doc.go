// Package modeladapter provides the HTTP base shared by LLM API clients.
//
// It contains the embeddable [ModelAdapter] struct with auth, custom headers
// and a single-attempt [ModelAdapter.PostJSON] helper. Non-2xx replies are
// reported as [github.com/germanamz/openrouter/pkg/errs.ErrTransport] errors.
// There is no retry, backoff or rate limiting: every call is one round trip.
//
// This package contains no provider-specific code. The concrete client lives
// in [github.com/germanamz/openrouter/pkg/client].
package modeladapter
