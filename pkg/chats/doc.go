// Package chats provides the conversation data model sent to the chat
// completions API.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/openrouter/pkg/chats/role]: conversation roles (system, user, assistant)
//   - [github.com/germanamz/openrouter/pkg/chats/message]: role/content messages
//
// No API code is included. chats is a foundation layer that the client,
// service and agent packages build on.
package chats
