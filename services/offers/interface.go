package offers

import (
	"context"
	"time"

	conversationRepo "glowdesk/database/repository/conversation"
	"glowdesk/models"
	"glowdesk/services/timezone"
)

// Adjustment records a field the enforcement step rewrote, for observability.
type Adjustment struct {
	Original   any    `json:"original"`
	Normalized string `json:"normalized"`
}

// Service owns the lifecycle of pending slot offers on a conversation:
// record, expire, capture a customer's selection, and enforce that a booking
// request matches what was actually offered.
type Service interface {
	RecordOffers(ctx context.Context, conv *models.Conversation, serviceType, date string, displaySlots, allSlots []models.Slot) error
	ClearOffers(ctx context.Context, conv *models.Conversation) error
	GetPendingSlotOffers(conv *models.Conversation) *models.PendingSlotOffers
	CaptureSelection(ctx context.Context, conv *models.Conversation, message string) (bool, error)
	EnforceBooking(ctx context.Context, conv *models.Conversation, args map[string]any) (map[string]any, map[string]Adjustment, error)
	PendingSlotSummary(conv *models.Conversation) []models.SlotSummary
}

// DefaultOfferService implements Service on top of a conversation repository.
type DefaultOfferService struct {
	Repo conversationRepo.ConversationRepository
	TZ   *timezone.Normalizer
	TTL  time.Duration
	Now  func() time.Time // injectable clock for tests; nil means time.Now
}

// DefaultOfferTTL is the window during which an offer remains valid.
const DefaultOfferTTL = 30 * time.Minute

func (s *DefaultOfferService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultOfferService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultOfferTTL
}
