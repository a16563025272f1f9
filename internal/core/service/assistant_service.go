package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

const (
	conversationTemperature = 0.7
	correctionTemperature   = 0.1
	replyMaxTokens          = 150

	// routeMarker is the line prefix the model uses to signal a routing
	// intent instead of a free-text answer.
	routeMarker = "NEXT_NODE:"

	routeAck          = "Okay, let's move on."
	degradedReply     = "Sorry, I'm having trouble reaching my assistant right now. Please try again in a moment."
	unconfiguredReply = "The AI assistant is not configured on this server."
)

const correctionInstruction = "You are an AI assistant specialized in correcting grammatical mistakes, " +
	"spelling errors, and awkward phrasing in user's input. Your sole task is to provide the grammatically " +
	"correct and polished version of the user's message. Do NOT add any extra information, greetings, or " +
	"explanations. Only return the corrected text. If the input is already perfect, return it as is."

// AssistantService is the AI passthrough adapter: it forwards transcripts
// and text snippets to the external completion service and always degrades
// to a safe local reply when that service is unreachable or unconfigured.
type AssistantService struct {
	client      ports.CompletionClient
	instruction string
	logger      zerolog.Logger
}

func NewAssistantService(client ports.CompletionClient, logger zerolog.Logger) *AssistantService {
	return &AssistantService{
		client:      client,
		instruction: conversationInstruction(),
		logger:      logger,
	}
}

// conversationInstruction builds the fixed system prompt, enumerating the
// closed routing vocabulary the model is allowed to emit.
func conversationInstruction() string {
	keywords := strings.Join(domain.RoutingKeywords(), ", ")
	return "You are a helpful chatbot assistant. Answer the visitor's question concisely. " +
		"If, and only if, the visitor asks to move to a different part of the conversation, reply with " +
		"a single line of the form \"" + routeMarker + " <keyword>\" where <keyword> is exactly one of: " +
		keywords + ". Never invent other keywords."
}

func (s *AssistantService) CorrectText(ctx context.Context, text string) (*ports.CorrectionResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	if !s.client.Configured() {
		return &ports.CorrectionResult{CorrectedText: text, Degraded: true}, nil
	}

	out, err := s.client.Complete(ctx, ports.CompletionRequest{
		Instruction: correctionInstruction,
		Messages:    []domain.ChatTurn{{Role: domain.RoleUser, Content: text}},
		Temperature: correctionTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("correction call failed, returning original text")
		return &ports.CorrectionResult{CorrectedText: text, Degraded: true}, nil
	}

	corrected := stripCodeFence(strings.TrimSpace(out))
	if corrected == "" {
		return &ports.CorrectionResult{CorrectedText: text, Degraded: true}, nil
	}
	return &ports.CorrectionResult{CorrectedText: corrected}, nil
}

func (s *AssistantService) Converse(ctx context.Context, history []domain.ChatTurn) (*ports.ConversationResult, error) {
	if len(history) == 0 {
		return nil, domain.ErrEmptyInput
	}

	if !s.client.Configured() {
		return &ports.ConversationResult{Reply: unconfiguredReply, Degraded: true}, nil
	}

	out, err := s.client.Complete(ctx, ports.CompletionRequest{
		Instruction: s.instruction,
		Messages:    history,
		Temperature: conversationTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("conversation call failed, returning fallback reply")
		return &ports.ConversationResult{Reply: degradedReply, Degraded: true}, nil
	}

	if keyword, ok := extractRoute(out); ok {
		return &ports.ConversationResult{Reply: routeAck, NextNodeKeyword: keyword}, nil
	}
	return &ports.ConversationResult{Reply: cleanReply(out)}, nil
}

// extractRoute scans the model output for a routing line. Keywords outside
// the closed vocabulary are ignored and the output falls through as text.
func extractRoute(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, routeMarker) {
			continue
		}
		keyword := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, routeMarker)))
		for _, allowed := range domain.RoutingKeywords() {
			if keyword == allowed {
				return keyword, true
			}
		}
	}
	return "", false
}

// cleanReply removes the markdown the model tends to add: bold markers and
// leading list asterisks.
func cleanReply(out string) string {
	out = strings.TrimSpace(out)
	out = strings.ReplaceAll(out, "**", "")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "* ") {
			lines[i] = "• " + strings.TrimPrefix(trimmed, "* ")
		}
	}
	return strings.Join(lines, "\n")
}

// stripCodeFence unwraps a response the model wrapped in triple backticks.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return s
	}
	body := strings.TrimSuffix(s, "```")
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = strings.TrimPrefix(body, "```")
	}
	return strings.TrimSpace(body)
}
