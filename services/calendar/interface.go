package calendar

import (
	"context"

	"glowdesk/models"
)

// BookingRequest carries everything the calendar backend needs to create an
// appointment event.
type BookingRequest struct {
	StartTime     string // ISO-8601
	EndTime       string // ISO-8601
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceType   string
	Provider      string
	Notes         string
}

// Service is the calendar collaborator boundary. Every method is a
// synchronous, fallible remote call; retry and backoff are the caller's
// concern, never implemented here.
type Service interface {
	// GetAvailableSlots returns the open slots for a date (YYYY-MM-DD),
	// optionally narrowed to a service type.
	GetAvailableSlots(ctx context.Context, date, serviceType string) ([]models.Slot, error)
	// BookAppointment creates the event and returns its ID. An empty ID
	// without an error is still a failure for the caller.
	BookAppointment(ctx context.Context, req BookingRequest) (string, error)
	// RescheduleAppointment moves an existing event.
	RescheduleAppointment(ctx context.Context, eventID, newStartTime, newEndTime string) (bool, error)
	// CancelAppointment deletes an existing event.
	CancelAppointment(ctx context.Context, eventID string) (bool, error)
	// GetAppointmentDetails fetches an event, nil when not found.
	GetAppointmentDetails(ctx context.Context, eventID string) (*models.AppointmentDetails, error)
}
