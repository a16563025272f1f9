package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

// The builder saves through a flattened payload: the configuration fields
// sit at the top level next to a botName key instead of being nested under
// a record. These helpers translate between that shape and the stored one.

var errBotNameRequired = errors.New("botName is required")

// parseFlattened extracts the record name and repackages everything else
// into the nested configuration document. Unrecognized keys ride along in
// the document's Extra set, so the payload round-trips untouched.
func parseFlattened(body []byte) (string, domain.Configuration, error) {
	var head struct {
		BotName string `json:"botName"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return "", domain.Configuration{}, fmt.Errorf("invalid payload: %w", err)
	}
	if strings.TrimSpace(head.BotName) == "" {
		return "", domain.Configuration{}, errBotNameRequired
	}

	var cfg domain.Configuration
	if err := json.Unmarshal(body, &cfg); err != nil {
		return "", domain.Configuration{}, fmt.Errorf("invalid payload: %w", err)
	}
	return head.BotName, cfg, nil
}

// flattenedView projects a stored record back to the flattened shape:
// configuration fields at the top level plus botName and record metadata.
func flattenedView(bot *domain.Chatbot) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(bot.Configuration)
	if err != nil {
		return nil, err
	}

	var view map[string]json.RawMessage
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}

	for key, val := range map[string]any{
		"id":         bot.ID,
		"botName":    bot.Name,
		"created_at": bot.CreatedAt,
		"updated_at": bot.UpdatedAt,
	} {
		enc, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		view[key] = enc
	}
	return view, nil
}

// --- Service result → HTTP response ---

func toChatbotResponse(bot *domain.Chatbot) chatbotResponse {
	return chatbotResponse{
		ID:            bot.ID,
		Name:          bot.Name,
		Configuration: bot.Configuration,
		CreatedAt:     bot.CreatedAt.UTC(),
		UpdatedAt:     bot.UpdatedAt.UTC(),
	}
}

func toSummaryResponses(summaries []ports.ChatbotSummary) []chatbotSummaryResponse {
	out := make([]chatbotSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, chatbotSummaryResponse{
			ID:        s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt.UTC(),
			UpdatedAt: s.UpdatedAt.UTC(),
		})
	}
	return out
}
