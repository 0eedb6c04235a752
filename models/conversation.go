package models

import "time"

// Channel identifiers for inbound customer messages.
const (
	ChannelSMS   = "sms"
	ChannelVoice = "voice"
	ChannelEmail = "email"
)

// Conversation is a single customer thread on one channel. It is owned by the
// messaging layer; the booking core only reads and writes reserved keys inside
// CustomMetadata.
type Conversation struct {
	ID             string         `bson:"_id" json:"id"`
	Channel        string         `bson:"channel" json:"channel"`
	CustomerName   string         `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerPhone  string         `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	CustomerEmail  string         `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomMetadata map[string]any `bson:"custom_metadata" json:"custom_metadata"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Metadata returns the custom metadata document, allocating it on first use.
func (c *Conversation) Metadata() map[string]any {
	if c.CustomMetadata == nil {
		c.CustomMetadata = make(map[string]any)
	}
	return c.CustomMetadata
}

// ConversationMessage is a single turn kept in the assistant context store.
type ConversationMessage struct {
	Role      string    `json:"role"` // "customer" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
