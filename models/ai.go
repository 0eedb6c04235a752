package models

// Intent is the coarse routing decision for a conversational turn.
type Intent string

const (
	IntentBooking   Intent = "booking"
	IntentFAQ       Intent = "faq"
	IntentSmallTalk Intent = "small_talk"
	IntentGeneral   Intent = "general"
)

// AssistantRequest is an inbound customer message forwarded by a channel
// adapter into the assistant pipeline.
type AssistantRequest struct {
	ConversationID string `json:"conversation_id"`
	Channel        string `json:"channel"`
	From           string `json:"from"` // phone number or email address
	Text           string `json:"text"`
}

// AssistantResponse is what the assistant hands back to the channel adapter.
type AssistantResponse struct {
	ConversationID string         `json:"conversation_id"`
	Intent         Intent         `json:"intent"`
	ReplyText      string         `json:"reply"`
	SlotsOffered   []Slot         `json:"slots_offered,omitempty"`
	Booking        *BookingResult `json:"booking,omitempty"`
}
