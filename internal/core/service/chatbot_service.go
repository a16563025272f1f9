package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/ports"
)

// ChatbotService implements the chatbot record store use cases. The
// configuration document is treated as an atomic value: every save
// replaces it wholesale, never merging node or connection edits.
type ChatbotService struct {
	repo   ports.ChatbotRepository
	logger zerolog.Logger
}

func NewChatbotService(repo ports.ChatbotRepository, logger zerolog.Logger) *ChatbotService {
	return &ChatbotService{repo: repo, logger: logger}
}

func (s *ChatbotService) List(ctx context.Context, ownerID string) ([]ports.ChatbotSummary, error) {
	bots, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.ChatbotSummary, 0, len(bots))
	for _, b := range bots {
		summaries = append(summaries, ports.ChatbotSummary{
			ID:        b.ID,
			Name:      b.Name,
			CreatedAt: b.CreatedAt,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return summaries, nil
}

func (s *ChatbotService) Create(ctx context.Context, input ports.CreateChatbotInput) (*domain.Chatbot, error) {
	name := input.Name
	if name == "" {
		name = domain.DefaultChatbotName
	}

	cfg := domain.DefaultConfiguration()
	if input.Configuration != nil {
		cfg = *input.Configuration
		cfg.ApplyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	bot := &domain.Chatbot{
		ID:            uuid.NewString(),
		OwnerID:       input.OwnerID,
		Name:          name,
		Configuration: cfg,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, bot); err != nil {
		return nil, err
	}

	s.logger.Info().Str("chatbot_id", bot.ID).Str("name", bot.Name).Msg("chatbot created")
	return bot, nil
}

func (s *ChatbotService) Get(ctx context.Context, ownerID, id string) (*domain.Chatbot, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

func (s *ChatbotService) GetByName(ctx context.Context, ownerID, name string) (*domain.Chatbot, error) {
	return s.repo.FindByName(ctx, ownerID, name)
}

// UpsertByName saves a document under (owner, name), creating the record
// when it does not exist yet. The returned flag reports created-vs-updated
// so the transport layer can surface 201 vs 200.
func (s *ChatbotService) UpsertByName(ctx context.Context, ownerID, name string, cfg domain.Configuration) (*domain.Chatbot, bool, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByName(ctx, ownerID, name)
	if err != nil {
		if !errors.Is(err, domain.ErrChatbotNotFound) {
			return nil, false, err
		}
		bot, createErr := s.Create(ctx, ports.CreateChatbotInput{
			OwnerID:       ownerID,
			Name:          name,
			Configuration: &cfg,
		})
		if createErr != nil {
			return nil, false, createErr
		}
		return bot, true, nil
	}

	existing.Configuration = cfg
	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}

	s.logger.Info().Str("chatbot_id", existing.ID).Str("name", name).Msg("chatbot configuration replaced")
	return existing, false, nil
}

func (s *ChatbotService) Update(ctx context.Context, input ports.UpdateChatbotInput) (*domain.Chatbot, error) {
	bot, err := s.repo.FindByID(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		bot.Name = *input.Name
	}
	if input.Configuration != nil {
		cfg := *input.Configuration
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		bot.Configuration = cfg
	}
	bot.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, bot); err != nil {
		return nil, err
	}
	return bot, nil
}

func (s *ChatbotService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.Info().Str("chatbot_id", id).Msg("chatbot deleted")
	return nil
}
