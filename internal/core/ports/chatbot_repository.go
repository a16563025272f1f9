package ports

import (
	"context"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

// ChatbotRepository defines persistence for chatbot records. Every lookup
// is scoped by ownerID; a record owned by someone else is reported as
// domain.ErrChatbotNotFound, indistinguishable from a genuinely absent id.
type ChatbotRepository interface {
	Create(ctx context.Context, bot *domain.Chatbot) error
	FindByID(ctx context.Context, ownerID, id string) (*domain.Chatbot, error)
	FindByName(ctx context.Context, ownerID, name string) (*domain.Chatbot, error)
	// ListByOwner returns the owner's records ordered by creation time,
	// most recent first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Chatbot, error)
	Update(ctx context.Context, bot *domain.Chatbot) error
	Delete(ctx context.Context, ownerID, id string) error
}
