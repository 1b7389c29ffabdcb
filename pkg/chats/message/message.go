// Package message defines the role/content pair sent to the chat completions API.
package message

import "github.com/germanamz/openrouter/pkg/chats/role"

// Message is a single turn of a conversation. Order within a conversation is
// significant and preserved on the wire.
type Message struct {
	Role    role.Role `json:"role" yaml:"role" validate:"required,oneof=system user assistant"`
	Content string    `json:"content" yaml:"content" validate:"required"`
}

// New creates a Message with the given role and content.
func New(r role.Role, content string) Message {
	return Message{Role: r, Content: content}
}

// System creates a system message.
func System(content string) Message { return New(role.System, content) }

// User creates a user message.
func User(content string) Message { return New(role.User, content) }

// Assistant creates an assistant message.
func Assistant(content string) Message { return New(role.Assistant, content) }
