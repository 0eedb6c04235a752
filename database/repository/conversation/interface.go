package conversationRepo

import (
	"context"

	"glowdesk/models"
)

// ConversationRepository defines data access for customer conversations. The
// booking core only ever touches the custom metadata document; message bodies
// belong to the messaging layer.
type ConversationRepository interface {
	// GetByID retrieves a conversation by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	// GetOrCreate finds the open conversation for a channel/address pair,
	// creating one if none exists.
	GetOrCreate(ctx context.Context, channel, address string) (*models.Conversation, error)
	// SaveMetadata persists the full custom metadata document for a
	// conversation. The write replaces the metadata atomically so that
	// concurrent turns on the same conversation serialize on the record.
	SaveMetadata(ctx context.Context, id string, metadata map[string]any) error
	// Delete removes a conversation record by its ID.
	Delete(ctx context.Context, id string) error
}
