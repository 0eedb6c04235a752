// File: services/offers/offers.go
package offers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"glowdesk/models"
	"glowdesk/services/timezone"
)

// RecordOffers stores a fresh pending offer on the conversation. If the
// customer already selected a slot from a previous (still valid) offer, the
// selection fields survive the re-offer untouched: the assistant re-checking
// availability must never silently discard a choice the customer already made.
func (s *DefaultOfferService) RecordOffers(ctx context.Context, conv *models.Conversation, serviceType, date string, displaySlots, allSlots []models.Slot) error {
	if conv == nil {
		return fmt.Errorf("record offers: nil conversation")
	}
	if len(allSlots) == 0 {
		allSlots = displaySlots
	}

	now := s.TZ.ToBusinessTime(s.now())
	offer := models.PendingSlotOffers{
		Slots:       indexSlots(displaySlots),
		AllSlots:    allSlots,
		ServiceType: serviceType,
		Date:        date,
		OfferedAt:   now.Format(time.RFC3339),
		ExpiresAt:   now.Add(s.ttl()).Format(time.RFC3339),
	}

	if existing := s.GetPendingSlotOffers(conv); existing.HasSelection() {
		offer.SelectedOptionIndex = existing.SelectedOptionIndex
		offer.SelectedSlot = existing.SelectedSlot
		offer.SelectedAt = existing.SelectedAt
	}

	conv.Metadata()[models.MetadataKeyPendingSlotOffers] = encodeOffer(&offer)
	return s.Repo.SaveMetadata(ctx, conv.ID, conv.CustomMetadata)
}

// ClearOffers removes the pending offer key entirely. Clearing a conversation
// with no pending offer is a no-op, not an error.
func (s *DefaultOfferService) ClearOffers(ctx context.Context, conv *models.Conversation) error {
	if conv == nil || conv.CustomMetadata == nil {
		return nil
	}
	if _, ok := conv.CustomMetadata[models.MetadataKeyPendingSlotOffers]; !ok {
		return nil
	}
	delete(conv.CustomMetadata, models.MetadataKeyPendingSlotOffers)
	return s.Repo.SaveMetadata(ctx, conv.ID, conv.CustomMetadata)
}

// GetPendingSlotOffers returns the conversation's pending offer, or nil when
// no offer exists, the stored document is malformed, or the offer has
// expired. An expired offer is treated as absent for every caller so a stale
// booking is forced through a fresh availability check.
func (s *DefaultOfferService) GetPendingSlotOffers(conv *models.Conversation) *models.PendingSlotOffers {
	if conv == nil || conv.CustomMetadata == nil {
		return nil
	}
	raw, ok := conv.CustomMetadata[models.MetadataKeyPendingSlotOffers]
	if !ok {
		return nil
	}
	offer := decodeOffer(raw)
	if offer == nil {
		return nil
	}
	expiresAt, err := s.TZ.ParseISO(offer.ExpiresAt)
	if err != nil {
		return nil
	}
	if !s.TZ.ToBusinessTime(s.now()).Before(expiresAt) {
		return nil
	}
	return offer
}

// CaptureSelection interprets a customer's free-text reply as a choice among
// the currently offered slots. It only acts when a valid pending offer exists
// and nothing has been selected yet; every other case returns false without
// touching state.
func (s *DefaultOfferService) CaptureSelection(ctx context.Context, conv *models.Conversation, message string) (bool, error) {
	offer := s.GetPendingSlotOffers(conv)
	if offer == nil || offer.HasSelection() {
		return false, nil
	}

	idx := ExtractChoice(message, offer.Slots)
	if idx == 0 {
		return false, nil
	}

	selected := offer.Slots[idx-1]
	offer.SelectedOptionIndex = idx
	offer.SelectedSlot = &selected
	offer.SelectedAt = s.TZ.ToBusinessTime(s.now()).Format(time.RFC3339)

	conv.Metadata()[models.MetadataKeyPendingSlotOffers] = encodeOffer(offer)
	if err := s.Repo.SaveMetadata(ctx, conv.ID, conv.CustomMetadata); err != nil {
		return false, err
	}
	log.Printf("CaptureSelection: conversation %s selected option %d (%s)", conv.ID, idx, selected.Start)
	return true, nil
}

// SlotMatchesRequest reports whether a requested start time refers to the
// given slot. The comparison is on wall-clock fields with timezone offsets
// stripped from both sides, tolerating offset-format drift between the
// calendar backend and the language model.
func (s *DefaultOfferService) SlotMatchesRequest(slot models.Slot, requestedStart string) bool {
	if requestedStart == "" {
		return false
	}
	slotStart, err := s.TZ.ParseISO(slot.Start)
	if err != nil {
		return false
	}
	reqStart, err := s.TZ.ParseISO(requestedStart)
	if err != nil {
		return false
	}
	return timezone.WallClockEqual(slotStart, reqStart)
}

// EnforceBooking is the enforcement boundary between the language model and
// the calendar backend. An explicit customer selection is authoritative and
// overrides whatever start time the caller passed; without one, the caller's
// start time must match a slot from the enforcement set or the booking is
// rejected. The returned map is a mutated copy of args; the adjustments
// record what was rewritten.
func (s *DefaultOfferService) EnforceBooking(ctx context.Context, conv *models.Conversation, args map[string]any) (map[string]any, map[string]Adjustment, error) {
	offer := s.GetPendingSlotOffers(conv)
	if offer == nil {
		return nil, nil, NewSlotSelectionError("no pending offer")
	}

	normalized := make(map[string]any, len(args)+1)
	for k, v := range args {
		normalized[k] = v
	}
	adjustments := make(map[string]Adjustment)

	setStart := func(canonical string) {
		original := normalized["start_time"]
		normalized["start_time"] = canonical
		// Legacy alias kept in sync for older tool schemas.
		if _, ok := normalized["start"]; ok {
			normalized["start"] = canonical
		}
		if orig, ok := original.(string); !ok || orig != canonical {
			adjustments["start_time"] = Adjustment{Original: original, Normalized: canonical}
		}
	}

	if offer.HasSelection() && offer.SelectedSlot != nil {
		setStart(offer.SelectedSlot.Start)
		return normalized, adjustments, nil
	}

	requested, _ := normalized["start_time"].(string)
	for _, slot := range offer.AllSlots {
		if s.SlotMatchesRequest(slot, requested) {
			setStart(slot.Start)
			return normalized, adjustments, nil
		}
	}
	return nil, nil, NewSlotSelectionError("requested slot not among offered slots")
}

// PendingSlotSummary projects the pending offer into the display shape used
// by channel adapters, stripping any other per-slot fields. Returns empty
// when no valid pending offer exists.
func (s *DefaultOfferService) PendingSlotSummary(conv *models.Conversation) []models.SlotSummary {
	offer := s.GetPendingSlotOffers(conv)
	if offer == nil {
		return nil
	}
	summaries := make([]models.SlotSummary, 0, len(offer.Slots))
	for i, slot := range offer.Slots {
		idx := slot.Index
		if idx == 0 {
			idx = i + 1
		}
		summaries = append(summaries, models.SlotSummary{
			Index:     idx,
			Start:     slot.Start,
			End:       slot.End,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return summaries
}

// indexSlots assigns 1-based display indexes.
func indexSlots(slots []models.Slot) []models.Slot {
	out := make([]models.Slot, len(slots))
	copy(out, slots)
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}

// encodeOffer flattens the typed offer into a generic document so the
// conversation metadata stays an arbitrary key/value map for every other
// consumer of it.
func encodeOffer(offer *models.PendingSlotOffers) map[string]any {
	b, err := json.Marshal(offer)
	if err != nil {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil
	}
	return doc
}

// decodeOffer validates a generic metadata value back into the typed offer.
// A missing or malformed document means "no pending offer", never a crash.
func decodeOffer(raw any) *models.PendingSlotOffers {
	if raw == nil {
		return nil
	}
	if typed, ok := raw.(*models.PendingSlotOffers); ok {
		return typed
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var offer models.PendingSlotOffers
	if err := json.Unmarshal(b, &offer); err != nil {
		return nil
	}
	if offer.OfferedAt == "" || offer.ExpiresAt == "" {
		return nil
	}
	return &offer
}
