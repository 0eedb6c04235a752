// File: services/booking/reschedule.go
package booking

import (
	"context"
	"fmt"
	"time"

	"glowdesk/models"
)

// RescheduleAppointment moves an existing calendar event to a new start,
// recomputing the end from the service duration. Same structured-failure
// discipline as booking: collaborator errors never escape as raw errors.
func (s *DefaultBookingService) RescheduleAppointment(ctx context.Context, eventID, newStartTime, serviceType string) *models.BookingResult {
	fail := func(msg string) *models.BookingResult {
		return &models.BookingResult{Success: false, Error: msg, EventID: eventID, ServiceType: serviceType}
	}

	if eventID == "" {
		return fail("event id is required")
	}
	parsed, err := s.TZ.ParseISO(newStartTime)
	if err != nil {
		return fail(fmt.Sprintf("invalid start time %q", newStartTime))
	}

	duration := defaultDurationMinutes
	svcName := serviceType
	if svc, ok := s.Catalog.Get(serviceType); ok {
		svcName = svc.Name
		if svc.DurationMinutes > 0 {
			duration = svc.DurationMinutes
		}
	}

	start := s.TZ.ToBusinessTime(parsed)
	end := start.Add(time.Duration(duration) * time.Minute)

	moved, err := s.Calendar.RescheduleAppointment(ctx, eventID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return fail(fmt.Sprintf("failed to reschedule appointment: %v", err))
	}
	if !moved {
		return fail("calendar declined the reschedule")
	}

	return &models.BookingResult{
		Success:         true,
		EventID:         eventID,
		StartTime:       start.Format(time.RFC3339),
		Service:         svcName,
		ServiceType:     serviceType,
		DurationMinutes: duration,
	}
}

// CancelAppointment deletes an existing calendar event.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, eventID string) *models.BookingResult {
	if eventID == "" {
		return &models.BookingResult{Success: false, Error: "event id is required"}
	}
	cancelled, err := s.Calendar.CancelAppointment(ctx, eventID)
	if err != nil {
		return &models.BookingResult{
			Success: false,
			EventID: eventID,
			Error:   fmt.Sprintf("failed to cancel appointment: %v", err),
		}
	}
	if !cancelled {
		return &models.BookingResult{Success: false, EventID: eventID, Error: "calendar declined the cancellation"}
	}
	return &models.BookingResult{Success: true, EventID: eventID}
}

// GetAppointmentDetails passes through to the calendar collaborator.
func (s *DefaultBookingService) GetAppointmentDetails(ctx context.Context, eventID string) (*models.AppointmentDetails, error) {
	return s.Calendar.GetAppointmentDetails(ctx, eventID)
}
