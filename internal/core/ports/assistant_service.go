package ports

import (
	"context"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// CompletionRequest is a single round trip to the external completion
// service: a fixed system instruction plus the caller's transcript.
type CompletionRequest struct {
	Instruction string
	Messages    []domain.ChatTurn
	Temperature float32
	MaxTokens   int
}

// CompletionClient talks to the external OpenAI-compatible endpoint.
// Configured reports whether a credential was supplied at construction;
// an unconfigured client fails every Complete call.
type CompletionClient interface {
	Configured() bool
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CorrectionResult is the outcome of a text-correction call. Degraded is
// set when the external service failed and the original text was returned
// unchanged.
type CorrectionResult struct {
	CorrectedText string
	Degraded      bool
}

// ConversationResult is the outcome of a conversation call. NextNodeKeyword
// is non-empty only when the model signalled a routing intent, and is
// always drawn from domain.RoutingKeywords.
type ConversationResult struct {
	Reply           string
	NextNodeKeyword string
	Degraded        bool
}

// AssistantService is the AI passthrough: both operations are stateless
// per call and never propagate upstream failures to the caller.
type AssistantService interface {
	CorrectText(ctx context.Context, text string) (*CorrectionResult, error)
	Converse(ctx context.Context, history []domain.ChatTurn) (*ConversationResult, error)
}
