// File: services/assistant/assistant.go
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	conversationRepo "glowdesk/database/repository/conversation"
	"glowdesk/models"
	"glowdesk/services/booking"
	"glowdesk/services/intent"
	"glowdesk/services/knowledge"
	"glowdesk/services/offers"
	"glowdesk/services/timezone"
)

// Service is the conversational entrypoint used by every channel adapter.
type Service interface {
	ProcessMessage(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, error)
}

// DefaultAssistantService wires the intent classifier, the slot selection
// core, the booking orchestrator, and the Gemini tool loop into one
// per-message pipeline.
type DefaultAssistantService struct {
	Repo      conversationRepo.ConversationRepository
	Offers    offers.Service
	Booking   booking.Service
	Catalog   booking.ServiceCatalog
	Knowledge knowledge.Service
	CtxStore  *RedisContextStore
	Gemini    *GeminiClient
	TZ        *timezone.Normalizer
}

// ProcessMessage handles one inbound customer message end to end:
// selection capture runs before anything else so a numeric reply is bound to
// the offered slots deterministically, then the turn is routed by intent.
func (s *DefaultAssistantService) ProcessMessage(ctx context.Context, req models.AssistantRequest) (*models.AssistantResponse, error) {
	conv, err := s.resolveConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.CtxStore.Append(ctx, conv.ID, models.ConversationMessage{
		Role: "customer", Content: req.Text, Timestamp: time.Now(),
	}); err != nil {
		log.Printf("ProcessMessage: failed to store customer message for %s: %v", conv.ID, err)
	}

	// Deterministic selection capture happens outside the model.
	captured, err := s.Offers.CaptureSelection(ctx, conv, req.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to capture selection: %w", err)
	}
	if captured {
		return s.reply(ctx, conv, models.IntentBooking, s.selectionConfirmation(ctx, conv))
	}

	turnIntent := intent.Classify(intent.Context{
		Channel:  conv.Channel,
		Text:     req.Text,
		Metadata: conv.CustomMetadata,
	})

	switch turnIntent {
	case models.IntentBooking:
		return s.handleBooking(ctx, conv, req.Text)
	case models.IntentFAQ:
		if answer, ok := s.Knowledge.Answer(req.Text, s.Catalog.All()); ok {
			return s.reply(ctx, conv, models.IntentFAQ, answer)
		}
		return s.handleGeneral(ctx, conv, req.Text, models.IntentFAQ)
	case models.IntentSmallTalk:
		return s.reply(ctx, conv, models.IntentSmallTalk, smallTalkReply(req.Text))
	default:
		return s.handleGeneral(ctx, conv, req.Text, models.IntentGeneral)
	}
}

func (s *DefaultAssistantService) resolveConversation(ctx context.Context, req models.AssistantRequest) (*models.Conversation, error) {
	if req.ConversationID != "" {
		conv, err := s.Repo.GetByID(ctx, req.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
		if conv != nil {
			return conv, nil
		}
	}
	conv, err := s.Repo.GetOrCreate(ctx, req.Channel, req.From)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversation: %w", err)
	}
	return conv, nil
}

func (s *DefaultAssistantService) handleBooking(ctx context.Context, conv *models.Conversation, text string) (*models.AssistantResponse, error) {
	history, err := s.CtxStore.History(ctx, conv.ID)
	if err != nil {
		log.Printf("handleBooking: failed to load history for %s: %v", conv.ID, err)
	}

	replyText, bookingResult, err := s.runToolLoop(ctx, conv, history, text)
	if err != nil {
		log.Printf("handleBooking: tool loop failed for %s: %v", conv.ID, err)
		return s.reply(ctx, conv, models.IntentBooking,
			"I'm having trouble with our booking system right now. Could you try again in a moment, or call us directly?")
	}
	if replyText == "" {
		replyText = "Is there anything else I can help you with?"
	}

	resp, err := s.reply(ctx, conv, models.IntentBooking, replyText)
	if err != nil {
		return nil, err
	}
	resp.Booking = bookingResult
	for _, sum := range s.Offers.PendingSlotSummary(conv) {
		resp.SlotsOffered = append(resp.SlotsOffered, models.Slot{
			Index:     sum.Index,
			Start:     sum.Start,
			End:       sum.End,
			StartTime: sum.StartTime,
			EndTime:   sum.EndTime,
		})
	}
	return resp, nil
}

func (s *DefaultAssistantService) handleGeneral(ctx context.Context, conv *models.Conversation, text string, turnIntent models.Intent) (*models.AssistantResponse, error) {
	history, err := s.CtxStore.History(ctx, conv.ID)
	if err != nil {
		log.Printf("handleGeneral: failed to load history for %s: %v", conv.ID, err)
	}
	replyText, _, err := s.runToolLoop(ctx, conv, history, text)
	if err != nil || strings.TrimSpace(replyText) == "" {
		replyText = "Thanks for reaching out! How can I help you today?"
	}
	return s.reply(ctx, conv, turnIntent, replyText)
}

// selectionConfirmation acknowledges a captured slot choice and nudges the
// conversation toward the booking confirmation.
func (s *DefaultAssistantService) selectionConfirmation(ctx context.Context, conv *models.Conversation) string {
	offer := s.Offers.GetPendingSlotOffers(conv)
	if offer == nil || offer.SelectedSlot == nil {
		return "Got it! Shall I go ahead and book that for you?"
	}
	display := offer.SelectedSlot.StartTime
	if start, err := s.TZ.ParseISO(offer.SelectedSlot.Start); err == nil {
		display = s.TZ.FormatForDisplay(start, conv.Channel)
	}

	// The next turn routes straight to booking, whatever its phrasing.
	conv.Metadata()[intent.MetadataKeyPendingBookingIntent] = true
	if err := s.Repo.SaveMetadata(ctx, conv.ID, conv.CustomMetadata); err != nil {
		log.Printf("selectionConfirmation: failed to flag booking intent for %s: %v", conv.ID, err)
	}

	return fmt.Sprintf("Perfect, %s it is. Shall I confirm that appointment for you?", display)
}

func (s *DefaultAssistantService) reply(ctx context.Context, conv *models.Conversation, turnIntent models.Intent, text string) (*models.AssistantResponse, error) {
	if err := s.CtxStore.Append(ctx, conv.ID, models.ConversationMessage{
		Role: "assistant", Content: text, Timestamp: time.Now(),
	}); err != nil {
		log.Printf("reply: failed to store assistant message for %s: %v", conv.ID, err)
	}
	return &models.AssistantResponse{
		ConversationID: conv.ID,
		Intent:         turnIntent,
		ReplyText:      text,
	}, nil
}

var smallTalkReplies = map[string]string{
	"thanks":    "You're very welcome! Let me know if there's anything else.",
	"thank you": "You're very welcome! Let me know if there's anything else.",
	"bye":       "Take care! We look forward to seeing you.",
	"goodbye":   "Take care! We look forward to seeing you.",
}

func smallTalkReply(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	for prefix, reply := range smallTalkReplies {
		if strings.HasPrefix(lower, prefix) {
			return reply
		}
	}
	return "Hi there! I can help you book a treatment or answer questions about our services. What can I do for you?"
}
