// Package agent binds a fixed model, system prompt and sampling profile to a
// service so callers only supply the prompt.
package agent

import (
	"context"
	"slices"

	"github.com/germanamz/openrouter/pkg/errs"
	"github.com/germanamz/openrouter/pkg/service"
)

const op = "agent"

// Chatter runs a completion request. *service.Service implements it.
type Chatter interface {
	CompleteChat(ctx context.Context, req service.Request) (*service.Response, error)
}

var _ Chatter = (*service.Service)(nil)

// Config is an agent profile. Model and System are required; sampling
// controls are only range-checked when a request is sent.
type Config struct {
	Name    string `yaml:"name"`
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`

	Model  string `yaml:"model"`
	System string `yaml:"system"`

	Temperature      *float64 `yaml:"temperature"`
	TopP             *float64 `yaml:"top_p"`
	MaxTokens        *int     `yaml:"max_tokens"`
	FrequencyPenalty *float64 `yaml:"frequency_penalty"`
	PresencePenalty  *float64 `yaml:"presence_penalty"`
	Stop             []string `yaml:"stop"`

	ResponseAsJSON bool `yaml:"response_as_json"`
}

// clone returns a copy of c that shares no memory with it.
func (c Config) clone() Config {
	c.Temperature = clonePtr(c.Temperature)
	c.TopP = clonePtr(c.TopP)
	c.MaxTokens = clonePtr(c.MaxTokens)
	c.FrequencyPenalty = clonePtr(c.FrequencyPenalty)
	c.PresencePenalty = clonePtr(c.PresencePenalty)
	c.Stop = slices.Clone(c.Stop)

	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Agent is an immutable completion profile bound to a shared service.
// It is safe for concurrent use.
type Agent struct {
	service Chatter
	cfg     Config
}

// New creates an Agent bound to svc.
func New(svc Chatter, cfg Config) (*Agent, error) {
	if s, ok := svc.(*service.Service); svc == nil || (ok && s == nil) {
		return nil, errs.Config(op, "service instance is required")
	}
	if cfg.Model == "" {
		return nil, errs.Validation(op, "model is required and must be a string")
	}
	if cfg.System == "" {
		return nil, errs.Validation(op, "system prompt is required and must be a string")
	}

	return &Agent{service: svc, cfg: cfg.clone()}, nil
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.cfg.Name }

// Config returns a copy of the agent's profile.
func (a *Agent) Config() Config { return a.cfg.clone() }

// CompleteChat sends prompt with the agent's profile. The service's result
// and error are returned as-is.
func (a *Agent) CompleteChat(ctx context.Context, prompt string) (*service.Response, error) {
	cfg := a.cfg.clone()

	return a.service.CompleteChat(ctx, service.Request{
		Prompt:           prompt,
		System:           cfg.System,
		Model:            cfg.Model,
		Referer:          cfg.Referer,
		Title:            cfg.Title,
		Temperature:      cfg.Temperature,
		TopP:             cfg.TopP,
		MaxTokens:        cfg.MaxTokens,
		FrequencyPenalty: cfg.FrequencyPenalty,
		PresencePenalty:  cfg.PresencePenalty,
		Stop:             cfg.Stop,
		ResponseAsJSON:   cfg.ResponseAsJSON,
	})
}
