// File: services/intent/classifier.go
package intent

import (
	"strings"

	"glowdesk/models"
)

// Context is the input to a single classification: the channel, the latest
// customer text, and the conversation's custom metadata.
type Context struct {
	Channel  string
	Text     string
	Metadata map[string]any
}

// MetadataKeyPendingBookingIntent flags a conversation whose next turn should
// route to booking regardless of phrasing (set by the assistant when it asks
// a booking follow-up question).
const MetadataKeyPendingBookingIntent = "pending_booking_intent"

// The keyword and phrase tables below are deliberately plain data so the
// priority order and sets stay independently testable.

var bookingKeywords = []string{
	"book",
	"schedule",
	"appointment",
	"reserve",
	"slot",
	"resched", // catches reschedule/rescheduling
	"cancel my appointment",
}

var smallTalkPhrases = []string{
	"hi",
	"hello",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"thanks",
	"thank you",
	"ok",
	"okay",
	"sounds good",
	"great",
	"bye",
	"goodbye",
}

var questionPrefixes = []string{
	"what", "when", "where", "who", "why", "how",
	"do", "does", "is", "are", "can", "could", "will", "would",
}

var faqKeywords = []string{
	"hours", "open", "close", "location", "address", "parking",
	"price", "pricing", "cost", "how much", "deposit",
	"policy", "cancellation", "refund", "insurance",
	"provider", "injector", "esthetician", "nurse",
	"botox", "filler", "hydrafacial", "peel", "microneedling", "laser",
}

// Classify routes a conversational turn. Deterministic, stateless,
// case-insensitive rules evaluated in fixed priority order: booking beats
// small talk beats FAQ beats general. Empty text falls through to the
// metadata check and then to general.
func Classify(ctx Context) models.Intent {
	text := strings.ToLower(strings.TrimSpace(ctx.Text))

	if pendingBooking(ctx.Metadata) {
		return models.IntentBooking
	}
	for _, kw := range bookingKeywords {
		if strings.Contains(text, kw) {
			return models.IntentBooking
		}
	}

	if text == "" {
		return models.IntentGeneral
	}

	for _, phrase := range smallTalkPhrases {
		if text == phrase || strings.HasPrefix(text, phrase+" ") || strings.HasPrefix(text, phrase+",") || strings.HasPrefix(text, phrase+"!") {
			return models.IntentSmallTalk
		}
	}

	if looksLikeQuestion(text) && containsAny(text, faqKeywords) {
		return models.IntentFAQ
	}

	return models.IntentGeneral
}

func pendingBooking(metadata map[string]any) bool {
	if metadata == nil {
		return false
	}
	switch v := metadata[MetadataKeyPendingBookingIntent].(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	default:
		return false
	}
}

func looksLikeQuestion(text string) bool {
	if strings.HasSuffix(text, "?") {
		return true
	}
	first := text
	if i := strings.IndexByte(text, ' '); i > 0 {
		first = text[:i]
	}
	for _, prefix := range questionPrefixes {
		if first == prefix {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
