package client_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/germanamz/openrouter/pkg/chats/message"
	"github.com/germanamz/openrouter/pkg/chats/role"
	"github.com/germanamz/openrouter/pkg/client"
	"github.com/germanamz/openrouter/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newClient(t *testing.T) *client.Client {
	t.Helper()

	c, err := client.New("x")
	require.NoError(t, err)

	return c
}

func TestPayload_OmitsUnsetFields(t *testing.T) {
	c := newClient(t)

	payload, err := c.Payload(basicParams())
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t, `{"model":"openai/gpt-4o","messages":[{"role":"user","content":"Hi"}]}`, string(data))
	assert.NotContains(t, string(data), "null")
}

func TestPayload_AllFieldsSnakeCase(t *testing.T) {
	c := newClient(t)

	p := basicParams()
	p.Temperature = ptr(0.7)
	p.TopP = ptr(0.9)
	p.FrequencyPenalty = ptr(-1.5)
	p.PresencePenalty = ptr(1.0)
	p.MaxTokens = ptr(256)
	p.Stop = []string{"END"}

	payload, err := c.Payload(p)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"model": "openai/gpt-4o",
		"messages": [{"role": "user", "content": "Hi"}],
		"temperature": 0.7,
		"top_p": 0.9,
		"frequency_penalty": -1.5,
		"presence_penalty": 1,
		"max_tokens": 256,
		"stop": ["END"]
	}`, string(data))
}

func TestPayload_ZeroValuesAreSent(t *testing.T) {
	c := newClient(t)

	p := basicParams()
	p.Temperature = ptr(0.0)
	p.TopP = ptr(0.0)

	payload, err := c.Payload(p)
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Contains(t, body, "temperature")
	assert.Contains(t, body, "top_p")
}

func TestPayload_BoundariesAccepted(t *testing.T) {
	c := newClient(t)

	p := basicParams()
	p.Temperature = ptr(2.0)
	p.TopP = ptr(1.0)
	p.FrequencyPenalty = ptr(-2.0)
	p.PresencePenalty = ptr(2.0)
	p.MaxTokens = ptr(1)

	_, err := c.Payload(p)
	assert.NoError(t, err)
}

func TestPayload_OutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*client.Params)
		want   string
	}{
		{"temperature high", func(p *client.Params) { p.Temperature = ptr(2.1) }, "temperature must be between 0 and 2"},
		{"temperature low", func(p *client.Params) { p.Temperature = ptr(-0.1) }, "temperature must be between 0 and 2"},
		{"topP", func(p *client.Params) { p.TopP = ptr(1.5) }, "topP must be between 0 and 1"},
		{"frequencyPenalty", func(p *client.Params) { p.FrequencyPenalty = ptr(-3.0) }, "frequencyPenalty must be between -2 and 2"},
		{"presencePenalty", func(p *client.Params) { p.PresencePenalty = ptr(2.5) }, "presencePenalty must be between -2 and 2"},
		{"maxTokens zero", func(p *client.Params) { p.MaxTokens = ptr(0) }, "maxTokens must be between 1 and Infinity (zero not allowed)"},
		{"maxTokens negative", func(p *client.Params) { p.MaxTokens = ptr(-5) }, "maxTokens must be between 1 and Infinity (zero not allowed)"},
		{"temperature NaN", func(p *client.Params) { p.Temperature = ptr(math.NaN()) }, "temperature must be a number"},
		{"topP Inf", func(p *client.Params) { p.TopP = ptr(math.Inf(1)) }, "topP must be a number"},
	}

	c := newClient(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := basicParams()
			tt.mutate(&p)

			_, err := c.Payload(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPayload_FirstInvalidFieldReported(t *testing.T) {
	c := newClient(t)

	p := basicParams()
	p.Temperature = ptr(5.0)
	p.MaxTokens = ptr(0)

	_, err := c.Payload(p)
	assert.ErrorContains(t, err, "temperature")
}

func TestPayload_InvalidModelAndMessages(t *testing.T) {
	tests := []struct {
		name   string
		params client.Params
		want   string
	}{
		{
			name:   "missing model",
			params: client.Params{Messages: []message.Message{message.User("hi")}},
			want:   "model must be a string",
		},
		{
			name:   "nil messages",
			params: client.Params{Model: "m"},
			want:   "messages must be a non-empty array",
		},
		{
			name:   "empty messages",
			params: client.Params{Model: "m", Messages: []message.Message{}},
			want:   "messages must be a non-empty array",
		},
		{
			name:   "missing content",
			params: client.Params{Model: "m", Messages: []message.Message{{Role: role.User}}},
			want:   "each message must be an object with 'role' and 'content'",
		},
		{
			name:   "missing role",
			params: client.Params{Model: "m", Messages: []message.Message{message.User("a"), {Content: "b"}}},
			want:   "each message must be an object with 'role' and 'content'",
		},
		{
			name:   "unknown role",
			params: client.Params{Model: "m", Messages: []message.Message{{Role: "tool", Content: "x"}}},
			want:   "message role must be one of system, user, assistant",
		},
	}

	c := newClient(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Payload(tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPayload_PreservesMessageOrder(t *testing.T) {
	c := newClient(t)

	msgs := []message.Message{
		message.System("sys"),
		message.User("one"),
		message.Assistant("two"),
		message.User("three"),
	}

	payload, err := c.Payload(client.Params{Model: "m", Messages: msgs})
	require.NoError(t, err)
	assert.Equal(t, msgs, payload.Messages)
}
