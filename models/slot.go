package models

// Slot is a single appointment time offered to a customer. Start and End are
// ISO-8601 strings as reported by the calendar backend; StartTime and EndTime
// are the human labels shown in customer-facing text (e.g. "5:30 PM").
type Slot struct {
	Index     int    `bson:"index,omitempty" json:"index,omitempty"` // 1-based position in the offered list
	Start     string `bson:"start" json:"start"`
	End       string `bson:"end" json:"end"`
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
}

// PendingSlotOffers is the offer state stored against a conversation under
// CustomMetadata[MetadataKeyPendingSlotOffers]. Slots is the display-bound
// subset (indexed 1..N); AllSlots is the full candidate set used for
// enforcement and is always a superset of Slots.
type PendingSlotOffers struct {
	Slots               []Slot `bson:"slots" json:"slots"`
	AllSlots            []Slot `bson:"all_slots" json:"all_slots"`
	ServiceType         string `bson:"service_type,omitempty" json:"service_type,omitempty"`
	Date                string `bson:"date,omitempty" json:"date,omitempty"` // YYYY-MM-DD
	OfferedAt           string `bson:"offered_at" json:"offered_at"`
	ExpiresAt           string `bson:"expires_at" json:"expires_at"`
	SelectedOptionIndex int    `bson:"selected_option_index,omitempty" json:"selected_option_index,omitempty"` // 1-based; 0 = no selection
	SelectedSlot        *Slot  `bson:"selected_slot,omitempty" json:"selected_slot,omitempty"`
	SelectedAt          string `bson:"selected_at,omitempty" json:"selected_at,omitempty"`
}

// MetadataKeyPendingSlotOffers is the reserved key inside a conversation's
// custom metadata document where the pending offer state lives.
const MetadataKeyPendingSlotOffers = "pending_slot_offers"

// HasSelection reports whether the customer has already picked a slot.
func (p *PendingSlotOffers) HasSelection() bool {
	return p != nil && p.SelectedOptionIndex > 0
}

// SlotSummary is the external display projection of an offered slot.
type SlotSummary struct {
	Index     int    `json:"index"`
	Start     string `json:"start"`
	End       string `json:"end"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
