package booking

import (
	"context"
	"time"

	"glowdesk/models"
	"glowdesk/services/calendar"
	"glowdesk/services/notification"
	"glowdesk/services/offers"
	"glowdesk/services/tasks"
	"glowdesk/services/timezone"
)

// Service is the booking orchestrator used by channel flows and the LLM
// tool-calling layer. Every method returns a structured result; collaborator
// failures degrade to {success: false}, never raw errors, with the single
// exception of the normalization ceiling which indicates a logic bug.
type Service interface {
	CheckAvailability(ctx context.Context, conv *models.Conversation, date, serviceType string, limit int) *models.CheckAvailabilityResult
	BookAppointment(ctx context.Context, conv *models.Conversation, params models.BookingParams) (*models.BookingResult, error)
	RescheduleAppointment(ctx context.Context, eventID, newStartTime, serviceType string) *models.BookingResult
	CancelAppointment(ctx context.Context, eventID string) *models.BookingResult
	GetAppointmentDetails(ctx context.Context, eventID string) (*models.AppointmentDetails, error)
}

// DefaultBookingService implements Service.
type DefaultBookingService struct {
	Calendar  calendar.Service
	Offers    offers.Service
	Catalog   ServiceCatalog
	TZ        *timezone.Normalizer
	Deposits  DepositHandler
	Reminders tasks.ReminderScheduler
	Notifier  notification.Service
	Now       func() time.Time // injectable clock for tests; nil means time.Now
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
