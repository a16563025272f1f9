package handler

import (
	"time"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createChatbotRequest struct {
	Name          string                `json:"name"`
	Configuration *domain.Configuration `json:"configuration"`
}

type createEmptyChatbotRequest struct {
	Name string `json:"name"`
}

// updateChatbotRequest applies partial fields; absent fields keep their
// stored value. A present configuration replaces the document wholesale.
type updateChatbotRequest struct {
	Name          *string               `json:"name"`
	Configuration *domain.Configuration `json:"configuration"`
}

// chatbotResponse is the nested record shape served by the id-keyed endpoints.
type chatbotResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Configuration domain.Configuration `json:"configuration"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// chatbotSummaryResponse is the lightweight item used in list responses.
// It intentionally omits the configuration document to keep payloads small.
type chatbotSummaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
