// Package openrouter is the entry point of the library. It resolves the API
// key once, owns the transport client and the service, and creates agents
// that share that service.
//
//	or, err := openrouter.New(openrouter.Config{})
//	if err != nil { ... }
//	a, err := or.CreateAgent(agent.Config{Model: "openai/gpt-4o", System: "Be brief."})
//	resp, err := a.CompleteChat(ctx, "What is the capital of Japan?")
package openrouter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/germanamz/openrouter/pkg/agent"
	"github.com/germanamz/openrouter/pkg/client"
	"github.com/germanamz/openrouter/pkg/service"
	"github.com/joho/godotenv"
)

// APIKeyEnv is the environment variable consulted when Config.APIKey is empty.
const APIKeyEnv = "OPEN_ROUTER_API_KEY"

// Config configures an OpenRouter facade.
//
// The API key is resolved once, in order: APIKey, the OPEN_ROUTER_API_KEY
// environment variable, then the same variable read from EnvFile. Reading
// EnvFile never modifies the process environment and a missing file is
// ignored.
type Config struct {
	APIKey     string       //nolint:gosec // configuration field, not a hardcoded secret
	EnvFile    string       // Optional .env file consulted last.
	BaseURL    string       // Defaults to client.DefaultBaseURL.
	HTTPClient *http.Client // Defaults to http.DefaultClient.
	Logger     *slog.Logger // Defaults to slog.Default().
}

// OpenRouter bundles a client and a service. It is safe for concurrent use.
type OpenRouter struct {
	client  *client.Client
	service *service.Service
}

// New resolves the API key and builds the client and service.
func New(cfg Config) (*OpenRouter, error) {
	key, err := resolveAPIKey(cfg)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	opts := []client.Option{client.WithLogger(log)}
	if cfg.BaseURL != "" {
		opts = append(opts, client.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, client.WithHTTPClient(cfg.HTTPClient))
	}

	c, err := client.New(key, opts...)
	if err != nil {
		return nil, err
	}

	svc, err := service.New(c, service.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &OpenRouter{client: c, service: svc}, nil
}

func resolveAPIKey(cfg Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		return key, nil
	}

	if cfg.EnvFile == "" {
		return "", nil
	}

	env, err := godotenv.Read(cfg.EnvFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("openrouter: read env file: %w", err)
	}

	return env[APIKeyEnv], nil
}

// APIKey returns the API key in use.
func (o *OpenRouter) APIKey() string { return o.client.APIKey() }

// Client returns the shared transport client.
func (o *OpenRouter) Client() *client.Client { return o.client }

// Service returns the shared service.
func (o *OpenRouter) Service() *service.Service { return o.service }

// CreateAgent returns a new agent bound to the shared service.
func (o *OpenRouter) CreateAgent(cfg agent.Config) (*agent.Agent, error) {
	return agent.New(o.service, cfg)
}

// LoadAgents creates one agent per profile in the YAML file at path and
// returns them in a registry keyed by name.
func (o *OpenRouter) LoadAgents(path string) (*agent.Registry, error) {
	cfgs, err := agent.LoadConfigs(path)
	if err != nil {
		return nil, err
	}

	reg := agent.NewRegistry()
	for i, cfg := range cfgs {
		a, err := o.CreateAgent(cfg)
		if err != nil {
			return nil, fmt.Errorf("openrouter: agent %d (%q): %w", i, cfg.Name, err)
		}
		if err := reg.Register(a); err != nil {
			return nil, fmt.Errorf("openrouter: agent %d: %w", i, err)
		}
	}

	return reg, nil
}
