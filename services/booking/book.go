// File: services/booking/book.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"glowdesk/models"
	"glowdesk/services/calendar"
	"glowdesk/services/offers"
	"glowdesk/services/timezone"
)

// BookAppointment runs the full booking pipeline: parse and normalize the
// requested start, resolve the service, enforce the request against the
// conversation's pending offers, create the calendar event, then clear the
// consumed offer and fire post-booking side effects.
//
// The returned error is non-nil only for the normalization ceiling, which
// indicates a logic or input bug rather than an expected runtime condition;
// every other failure comes back inside the result.
func (s *DefaultBookingService) BookAppointment(ctx context.Context, conv *models.Conversation, params models.BookingParams) (*models.BookingResult, error) {
	fail := func(msg string) *models.BookingResult {
		return &models.BookingResult{
			Success:     false,
			Error:       msg,
			ServiceType: params.ServiceType,
			Provider:    params.Provider,
			Notes:       params.Notes,
		}
	}

	parsedStart, err := s.TZ.ParseISO(params.StartTime)
	if err != nil {
		return fail(fmt.Sprintf("invalid start time %q", params.StartTime)), nil
	}

	svc, ok := s.Catalog.Get(params.ServiceType)
	if !ok {
		return fail(fmt.Sprintf("unknown service type %q", params.ServiceType)), nil
	}
	duration := svc.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}

	originalStart := s.TZ.ToBusinessTime(parsedStart).Format(time.RFC3339)
	adjustedStart, wasAdjusted, err := s.TZ.EnsureFuture(parsedStart, s.now())
	if err != nil {
		var normErr *timezone.NormalizationError
		if errors.As(err, &normErr) {
			// More than three years of day-advancement means garbage input.
			return nil, err
		}
		return fail(err.Error()), nil
	}

	args := map[string]any{
		"start_time":   adjustedStart.Format(time.RFC3339),
		"service_type": svc.ID,
	}
	normalized, adjustments, err := s.Offers.EnforceBooking(ctx, conv, args)
	if err != nil {
		if offers.IsSlotSelectionError(err) {
			result := fail(err.Error())
			// Hand the current offer set back so the channel can re-prompt.
			for _, sum := range s.Offers.PendingSlotSummary(conv) {
				result.AvailableSlots = append(result.AvailableSlots, models.Slot{
					Index:     sum.Index,
					Start:     sum.Start,
					End:       sum.End,
					StartTime: sum.StartTime,
					EndTime:   sum.EndTime,
				})
			}
			return result, nil
		}
		return fail(fmt.Sprintf("offer enforcement failed: %v", err)), nil
	}
	if len(adjustments) > 0 {
		log.Printf("BookAppointment: conversation %s adjustments: %+v", conv.ID, adjustments)
	}

	enforcedStartStr, _ := normalized["start_time"].(string)
	enforcedStart, err := s.TZ.ParseISO(enforcedStartStr)
	if err != nil {
		return fail(fmt.Sprintf("invalid enforced start time %q", enforcedStartStr)), nil
	}
	enforcedStart = s.TZ.ToBusinessTime(enforcedStart)
	endTime := enforcedStart.Add(time.Duration(duration) * time.Minute)

	eventID, err := s.Calendar.BookAppointment(ctx, calendar.BookingRequest{
		StartTime:     enforcedStart.Format(time.RFC3339),
		EndTime:       endTime.Format(time.RFC3339),
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		CustomerPhone: params.CustomerPhone,
		ServiceType:   svc.Name,
		Provider:      params.Provider,
		Notes:         params.Notes,
	})
	if err != nil {
		log.Printf("BookAppointment: calendar error for conversation %s: %v", conv.ID, err)
		return fail(fmt.Sprintf("failed to create appointment: %v", err)), nil
	}
	if eventID == "" {
		return fail("calendar returned no event id"), nil
	}

	// The offer has been consumed; clearing failure doesn't undo the booking.
	if err := s.Offers.ClearOffers(ctx, conv); err != nil {
		log.Printf("BookAppointment: failed to clear offers for conversation %s: %v", conv.ID, err)
	}

	result := &models.BookingResult{
		Success:           true,
		EventID:           eventID,
		StartTime:         enforcedStart.Format(time.RFC3339),
		OriginalStartTime: originalStart,
		WasAutoAdjusted:   wasAdjusted,
		Service:           svc.Name,
		ServiceType:       svc.ID,
		Provider:          params.Provider,
		DurationMinutes:   duration,
		Notes:             params.Notes,
	}

	s.afterBooking(ctx, conv, svc, params, result, enforcedStart)
	return result, nil
}

// afterBooking runs the best-effort post-booking side effects: deposit
// payment intent, appointment reminder, and staff notification. None of them
// can fail the booking itself.
func (s *DefaultBookingService) afterBooking(ctx context.Context, conv *models.Conversation, svc *models.ServiceType, params models.BookingParams, result *models.BookingResult, start time.Time) {
	if s.Deposits != nil && svc.DepositAmountCents > 0 {
		secret, err := s.Deposits.CreateDepositIntent(svc, params.CustomerPhone, result.EventID)
		if err != nil {
			log.Printf("BookAppointment: deposit intent failed for event %s: %v", result.EventID, err)
		} else {
			result.DepositRequired = true
			result.DepositClientKey = secret
		}
	}

	if s.Reminders != nil {
		payload := models.ReminderPayload{
			EventID:       result.EventID,
			CustomerName:  params.CustomerName,
			CustomerPhone: params.CustomerPhone,
			Channel:       conv.Channel,
			Service:       svc.Name,
			StartTime:     result.StartTime,
		}
		if err := s.Reminders.ScheduleReminder(payload, start.Add(-24*time.Hour)); err != nil {
			log.Printf("BookAppointment: failed to schedule reminder for event %s: %v", result.EventID, err)
		}
	}

	if s.Notifier != nil {
		title := fmt.Sprintf("New booking: %s", svc.Name)
		body := fmt.Sprintf("%s on %s", params.CustomerName, s.TZ.FormatForDisplay(start, models.ChannelSMS))
		if err := s.Notifier.NotifyStaff(ctx, title, body, map[string]string{"eventId": result.EventID}); err != nil {
			log.Printf("BookAppointment: staff notification failed for event %s: %v", result.EventID, err)
		}
	}
}
