package domain

import (
	"errors"
	"time"
)

var ErrChatbotNotFound = errors.New("chatbot not found")
var ErrChatbotNameTaken = errors.New("chatbot name already taken")

// DefaultChatbotName is assigned when a record is created without a name.
const DefaultChatbotName = "New Chatbot"

// Chatbot is the core aggregate: an owned conversation-flow document plus
// record metadata. OwnerID scopes every lookup; a record is never visible
// outside its owner.
type Chatbot struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"-"`
	Name          string        `json:"name"`
	Configuration Configuration `json:"configuration"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
