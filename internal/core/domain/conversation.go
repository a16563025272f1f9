package domain

import "errors"

var ErrEmptyInput = errors.New("input must not be empty")

// Chat roles on a transcript turn, matching the OpenAI-compatible wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single role-tagged entry in a conversation transcript.
// The server keeps no conversation state; clients resend the full history
// on every call.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
