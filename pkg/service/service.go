// Package service layers a prompt-oriented request shape over the
// chat completions client and can decode JSON replies, repairing
// near-valid JSON when strict parsing fails.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/germanamz/openrouter/pkg/chats/message"
	"github.com/germanamz/openrouter/pkg/client"
	"github.com/germanamz/openrouter/pkg/errs"
	"github.com/kaptinlin/jsonrepair"
)

const op = "service"

// Completer sends a validated request to the chat completions endpoint.
// *client.Client implements it.
type Completer interface {
	Complete(ctx context.Context, p client.Params, h client.HeaderParams) (*client.Response, error)
}

var _ Completer = (*client.Client)(nil)

// Request describes one completion. When Prompt is set it takes priority over
// Messages and is combined with System into the conversation.
type Request struct {
	Prompt         string
	System         string
	ResponseAsJSON bool

	Referer string
	Title   string

	Model            string
	Messages         []message.Message
	Temperature      *float64
	MaxTokens        *int
	TopP             *float64
	FrequencyPenalty *float64
	PresencePenalty  *float64
	Stop             []string
}

// Response is a client reply annotated with what was sent. JSON and
// JSONRepaired are only set when the request asked for a JSON reply.
type Response struct {
	*client.Response

	HeaderParams  client.HeaderParams
	PayloadParams client.Params

	JSON         any
	JSONRepaired bool
}

// Repairer rewrites near-valid JSON text into valid JSON text.
type Repairer func(string) (string, error)

// Service is safe for concurrent use.
type Service struct {
	client Completer
	repair Repairer
	log    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for warnings and JSON parse failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithRepairer replaces the JSON repair step, jsonrepair.JSONRepair by default.
func WithRepairer(r Repairer) Option {
	return func(s *Service) { s.repair = r }
}

// New creates a Service on top of c.
func New(c Completer, opts ...Option) (*Service, error) {
	if cc, ok := c.(*client.Client); c == nil || (ok && cc == nil) {
		return nil, errs.Config(op, "client must be an instance of client.Client")
	}

	s := &Service{client: c, repair: jsonrepair.JSONRepair, log: slog.Default()}
	for _, o := range opts {
		o(s)
	}

	if s.log == nil {
		s.log = slog.Default()
	}
	if s.repair == nil {
		s.repair = jsonrepair.JSONRepair
	}

	return s, nil
}

// BuildMessages turns a prompt and an optional system instruction into a
// conversation: the system message first when present, then the prompt.
func (s *Service) BuildMessages(prompt, system string) ([]message.Message, error) {
	return buildMessages(prompt, system)
}

func buildMessages(prompt, system string) ([]message.Message, error) {
	if prompt == "" {
		return nil, errs.Validation(op, "prompt has to be a non-empty string")
	}

	msgs := make([]message.Message, 0, 2)
	if system != "" {
		msgs = append(msgs, message.System(system))
	}

	return append(msgs, message.User(prompt)), nil
}

// CompleteChat sends req and returns the reply. With ResponseAsJSON the reply
// content is decoded into Response.JSON, see ProcessJSON.
func (s *Service) CompleteChat(ctx context.Context, req Request) (*Response, error) {
	if req.Prompt != "" && req.Messages != nil {
		s.log.WarnContext(ctx, "prompt has priority over messages, messages will be ignored")
	}

	msgs := req.Messages
	if req.Prompt != "" {
		var err error
		if msgs, err = buildMessages(req.Prompt, req.System); err != nil {
			return nil, err
		}
	}

	headerParams := client.HeaderParams{Referer: req.Referer, Title: req.Title}
	payloadParams := client.Params{
		Model:            req.Model,
		Messages:         msgs,
		Temperature:      req.Temperature,
		MaxTokens:        req.MaxTokens,
		TopP:             req.TopP,
		FrequencyPenalty: req.FrequencyPenalty,
		PresencePenalty:  req.PresencePenalty,
		Stop:             req.Stop,
	}

	s.log.DebugContext(ctx, "complete chat", "model", req.Model)

	cr, err := s.client.Complete(ctx, payloadParams, headerParams)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Response:      cr,
		HeaderParams:  headerParams,
		PayloadParams: payloadParams,
	}

	if !req.ResponseAsJSON {
		return resp, nil
	}

	if err := s.ProcessJSON(ctx, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

var fence = regexp.MustCompile("(?i)```json\\s*|\\s*```")

// sanitizeJSON strips surrounding whitespace and markdown code fences.
func sanitizeJSON(s string) string {
	return strings.TrimSpace(fence.ReplaceAllString(strings.TrimSpace(s), ""))
}

// ProcessJSON decodes the reply content into resp.JSON. Content that fails
// strict parsing is run through the repairer and parsed again, setting
// resp.JSONRepaired. When both attempts fail the returned errs.ErrParse error
// carries the first parse error.
func (s *Service) ProcessJSON(ctx context.Context, resp *Response) error {
	var content string
	if resp.Response != nil {
		content = resp.Text()
	}

	sanitized := sanitizeJSON(content)

	var v any
	parseErr := json.Unmarshal([]byte(sanitized), &v)
	if parseErr == nil {
		resp.JSON = v
		resp.JSONRepaired = false
		return nil
	}

	repaired, err := s.repair(sanitized)
	if err == nil {
		if err = json.Unmarshal([]byte(repaired), &v); err == nil {
			resp.JSON = v
			resp.JSONRepaired = true
			return nil
		}
	} else {
		repaired = sanitized
	}

	s.log.ErrorContext(ctx, "could not parse JSON reply",
		"model", resp.PayloadParams.Model,
		"repaired", repaired,
		"error", err,
	)

	return errs.Parse(op, parseErr)
}
