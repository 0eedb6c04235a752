// File: services/booking/availability.go
package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"glowdesk/models"
)

// DefaultSlotLimit bounds how many slots are surfaced to the customer at
// once; the full set still backs enforcement.
const DefaultSlotLimit = 3

// CheckAvailability pulls open slots from the calendar collaborator, filters
// out anything not strictly in the future, records the result as the
// conversation's pending offer, and returns a bounded display view.
// Collaborator failures come back as structured errors, never panics.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, conv *models.Conversation, date, serviceType string, limit int) *models.CheckAvailabilityResult {
	if _, err := time.ParseInLocation("2006-01-02", date, s.TZ.Location()); err != nil {
		return &models.CheckAvailabilityResult{
			Success: false,
			Error:   fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", date),
		}
	}
	if limit <= 0 {
		limit = DefaultSlotLimit
	}

	rawSlots, err := s.Calendar.GetAvailableSlots(ctx, date, serviceType)
	if err != nil {
		log.Printf("CheckAvailability: calendar error for %s: %v", date, err)
		return &models.CheckAvailabilityResult{
			Success: false,
			Date:    date,
			Error:   fmt.Sprintf("failed to fetch availability: %v", err),
		}
	}

	// Past slots must never be offered, even if the calendar reports them.
	now := s.TZ.ToBusinessTime(s.now())
	future := make([]models.Slot, 0, len(rawSlots))
	for _, slot := range rawSlots {
		start, err := s.TZ.ParseISO(slot.Start)
		if err != nil {
			continue
		}
		if s.TZ.ToBusinessTime(start).After(now) {
			future = append(future, slot)
		}
	}

	display := future
	if len(display) > limit {
		display = display[:limit]
	}

	if err := s.Offers.RecordOffers(ctx, conv, serviceType, date, display, future); err != nil {
		log.Printf("CheckAvailability: failed to record offers for conversation %s: %v", conv.ID, err)
		return &models.CheckAvailabilityResult{
			Success: false,
			Date:    date,
			Error:   "failed to record slot offers",
		}
	}

	return &models.CheckAvailabilityResult{
		Success:        true,
		AvailableSlots: indexed(display),
		AllSlots:       future,
		Date:           date,
		Service:        ServiceDisplayName(s.Catalog, serviceType),
	}
}

func indexed(slots []models.Slot) []models.Slot {
	out := make([]models.Slot, len(slots))
	copy(out, slots)
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}
