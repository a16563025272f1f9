package ports

import (
	"context"
	"time"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// ChatbotSummary is the lightweight view used in list responses. It
// intentionally omits the configuration document to keep payloads small.
type ChatbotSummary struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateChatbotInput carries the data for a new chatbot record. A nil
// Configuration yields the default single-start-node document; an empty
// Name falls back to domain.DefaultChatbotName.
type CreateChatbotInput struct {
	OwnerID       string
	Name          string
	Configuration *domain.Configuration
}

// UpdateChatbotInput applies partial fields to an existing record. Nil
// pointers leave the current value untouched; a non-nil Configuration
// replaces the stored document wholesale.
type UpdateChatbotInput struct {
	OwnerID       string
	ID            string
	Name          *string
	Configuration *domain.Configuration
}

// ChatbotService defines use-case operations for chatbot records.
type ChatbotService interface {
	List(ctx context.Context, ownerID string) ([]ChatbotSummary, error)
	Create(ctx context.Context, input CreateChatbotInput) (*domain.Chatbot, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Chatbot, error)
	GetByName(ctx context.Context, ownerID, name string) (*domain.Chatbot, error)
	// UpsertByName locates a record by (owner, name), creating it when
	// absent and replacing its document when present. The returned flag is
	// true when a new record was created.
	UpsertByName(ctx context.Context, ownerID, name string, cfg domain.Configuration) (*domain.Chatbot, bool, error)
	Update(ctx context.Context, input UpdateChatbotInput) (*domain.Chatbot, error)
	Delete(ctx context.Context, ownerID, id string) error
}
