package client

import (
	"errors"
	"math"
	"reflect"

	"github.com/germanamz/openrouter/pkg/chats/message"
	"github.com/germanamz/openrouter/pkg/errs"
	"github.com/go-playground/validator/v10"
)

// Params are the caller-facing request parameters. Nil sampling controls are
// unset and never reach the wire.
type Params struct {
	Model            string            `param:"model" validate:"required"`
	Messages         []message.Message `param:"messages" validate:"required,min=1,dive"`
	Temperature      *float64          `param:"temperature" validate:"omitnil,finite,gte=0,lte=2"`
	TopP             *float64          `param:"topP" validate:"omitnil,finite,gte=0,lte=1"`
	FrequencyPenalty *float64          `param:"frequencyPenalty" validate:"omitnil,finite,gte=-2,lte=2"`
	PresencePenalty  *float64          `param:"presencePenalty" validate:"omitnil,finite,gte=-2,lte=2"`
	MaxTokens        *int              `param:"maxTokens" validate:"omitnil,gte=1"`
	Stop             []string          `param:"stop"`
}

// Payload is the request body of the chat completions endpoint.
type Payload struct {
	Model            string            `json:"model"`
	Messages         []message.Message `json:"messages"`
	Temperature      *float64          `json:"temperature,omitempty"`
	TopP             *float64          `json:"top_p,omitempty"`
	FrequencyPenalty *float64          `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64          `json:"presence_penalty,omitempty"`
	MaxTokens        *int              `json:"max_tokens,omitempty"`
	Stop             []string          `json:"stop,omitempty"`
}

type bounds struct{ min, max string }

// ranges mirrors the gte/lte tags on Params, keyed by param name.
var ranges = map[string]bounds{
	"temperature":      {"0", "2"},
	"topP":             {"0", "1"},
	"frequencyPenalty": {"-2", "2"},
	"presencePenalty":  {"-2", "2"},
	"maxTokens":        {"1", "Infinity"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("param"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if !f.CanFloat() {
			return true
		}
		return !math.IsNaN(f.Float()) && !math.IsInf(f.Float(), 0)
	})

	return v
}

// Payload validates p and converts it to the wire body. Validation failures
// are errs.ErrValidation errors naming the offending field.
func (c *Client) Payload(p Params) (Payload, error) {
	if err := validate.Struct(p); err != nil {
		return Payload{}, validationError(err)
	}

	return Payload{
		Model:            p.Model,
		Messages:         p.Messages,
		Temperature:      p.Temperature,
		TopP:             p.TopP,
		FrequencyPenalty: p.FrequencyPenalty,
		PresencePenalty:  p.PresencePenalty,
		MaxTokens:        p.MaxTokens,
		Stop:             p.Stop,
	}, nil
}

// validationError reports the first failed field in declaration order.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return errs.Validation(op, "invalid params: %v", err)
	}

	fe := ve[0]

	switch fe.StructField() {
	case "Model":
		return errs.Validation(op, "model must be a string")
	case "Messages":
		return errs.Validation(op, "messages must be a non-empty array")
	case "Role":
		if fe.Tag() == "oneof" {
			return errs.Validation(op, "message role must be one of system, user, assistant")
		}
		return errs.Validation(op, "each message must be an object with 'role' and 'content'")
	case "Content":
		return errs.Validation(op, "each message must be an object with 'role' and 'content'")
	}

	name := fe.Field()
	if fe.Tag() == "finite" {
		return errs.Validation(op, "%s must be a number", name)
	}

	if b, ok := ranges[name]; ok {
		if name == "maxTokens" {
			return errs.Validation(op, "%s must be between %s and %s (zero not allowed)", name, b.min, b.max)
		}
		return errs.Validation(op, "%s must be between %s and %s", name, b.min, b.max)
	}

	return errs.Validation(op, "%s failed %q validation", name, fe.Tag())
}
