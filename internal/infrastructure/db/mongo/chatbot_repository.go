package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/core/domain"
)

const chatbotsCollection = "chatbots"

type ChatbotRepository struct {
	coll *mongo.Collection
}

func NewChatbotRepository(db *mongo.Database) *ChatbotRepository {
	return &ChatbotRepository{coll: db.Collection(chatbotsCollection)}
}

type chatbotDoc struct {
	ID            string    `bson:"_id"`
	OwnerID       string    `bson:"owner_id"`
	Name          string    `bson:"name"`
	Configuration bson.M    `bson:"configuration"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (r *ChatbotRepository) Create(ctx context.Context, bot *domain.Chatbot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(bot)
	if err != nil {
		return err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrChatbotNameTaken
		}
		return fmt.Errorf("insert chatbot: %w", err)
	}
	return nil
}

func (r *ChatbotRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Chatbot, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

func (r *ChatbotRepository) FindByName(ctx context.Context, ownerID, name string) (*domain.Chatbot, error) {
	return r.findOne(ctx, bson.M{"owner_id": ownerID, "name": name})
}

func (r *ChatbotRepository) findOne(ctx context.Context, filter bson.M) (*domain.Chatbot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc chatbotDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChatbotNotFound
		}
		return nil, fmt.Errorf("find chatbot: %w", err)
	}
	return fromDoc(&doc)
}

func (r *ChatbotRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Chatbot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list chatbots: %w", err)
	}
	defer cursor.Close(ctx)

	var bots []*domain.Chatbot
	for cursor.Next(ctx) {
		var doc chatbotDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode chatbot: %w", err)
		}
		bot, err := fromDoc(&doc)
		if err != nil {
			return nil, err
		}
		bots = append(bots, bot)
	}
	return bots, cursor.Err()
}

func (r *ChatbotRepository) Update(ctx context.Context, bot *domain.Chatbot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toDoc(bot)
	if err != nil {
		return err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": bot.ID, "owner_id": bot.OwnerID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrChatbotNameTaken
		}
		return fmt.Errorf("update chatbot: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrChatbotNotFound
	}
	return nil
}

func (r *ChatbotRepository) Delete(ctx context.Context, ownerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete chatbot: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrChatbotNotFound
	}
	return nil
}

// EnsureIndexes creates the per-owner name uniqueness index and the list
// index on owner_id.
func (r *ChatbotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// The configuration document crosses the JSON/BSON boundary through
// relaxed extended JSON so unknown keys survive storage byte-for-byte.

func toDoc(bot *domain.Chatbot) (*chatbotDoc, error) {
	raw, err := json.Marshal(bot.Configuration)
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	var cfg bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &cfg); err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}

	return &chatbotDoc{
		ID:            bot.ID,
		OwnerID:       bot.OwnerID,
		Name:          bot.Name,
		Configuration: cfg,
		CreatedAt:     bot.CreatedAt,
		UpdatedAt:     bot.UpdatedAt,
	}, nil
}

func fromDoc(doc *chatbotDoc) (*domain.Chatbot, error) {
	raw, err := bson.MarshalExtJSON(doc.Configuration, false, false)
	if err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	var cfg domain.Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	return &domain.Chatbot{
		ID:            doc.ID,
		OwnerID:       doc.OwnerID,
		Name:          doc.Name,
		Configuration: cfg,
		CreatedAt:     doc.CreatedAt.UTC(),
		UpdatedAt:     doc.UpdatedAt.UTC(),
	}, nil
}
