package conversationRepo

import (
	"context"
	"fmt"
	"time"

	"glowdesk/database"
	"glowdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConversationRepo implements ConversationRepository using MongoDB.
type MongoConversationRepo struct {
	coll *mongo.Collection
}

// NewMongoConversationRepo creates a ConversationRepository backed by the
// conversations collection.
func NewMongoConversationRepo() ConversationRepository {
	coll := database.MongoClient.Database("glowdesk").Collection("conversations")
	repo := &MongoConversationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create conversation indexes: %v\n", err)
	}
	return repo
}

func (r *MongoConversationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "customerPhone", Value: 1}}},
		{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "customerEmail", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a conversation by its unique ID.
func (r *MongoConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&conv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch conversation %s: %w", id, err)
	}
	return &conv, nil
}

// GetOrCreate finds the conversation for a channel/address pair, creating a
// fresh one when none exists yet.
func (r *MongoConversationRepo) GetOrCreate(ctx context.Context, channel, address string) (*models.Conversation, error) {
	addressField := "customerPhone"
	if channel == models.ChannelEmail {
		addressField = "customerEmail"
	}

	now := time.Now()
	filter := bson.M{"channel": channel, addressField: address}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":             uuid.New().String(),
			"custom_metadata": map[string]any{},
			"createdAt":       now,
		},
		"$set": bson.M{"updatedAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Conversation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to get or create conversation for %s/%s: %w", channel, address, err)
	}
	return &out, nil
}

// SaveMetadata replaces the conversation's custom metadata document.
func (r *MongoConversationRepo) SaveMetadata(ctx context.Context, id string, metadata map[string]any) error {
	update := bson.M{"$set": bson.M{
		"custom_metadata": metadata,
		"updatedAt":       time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to save metadata for conversation %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("conversation %s not found", id)
	}
	return nil
}

// Delete removes a conversation record by its ID.
func (r *MongoConversationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", id, err)
	}
	return nil
}
