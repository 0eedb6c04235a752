// File: services/calendar/google.go
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"glowdesk/models"
	"glowdesk/services/timezone"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Business hours used to generate candidate slots, minutes from midnight.
const (
	openingMinute = 9 * 60  // 9:00 AM
	closingMinute = 17 * 60 // 5:00 PM
)

// GoogleCalendarService implements Service against the Google Calendar API.
type GoogleCalendarService struct {
	svc         *gcal.Service
	calendarID  string
	tz          *timezone.Normalizer
	slotMinutes int
}

// NewGoogleCalendarService builds a calendar client from a service account
// credentials file.
func NewGoogleCalendarService(ctx context.Context, credentialsFile, calendarID string, tz *timezone.Normalizer, slotMinutes int) (*GoogleCalendarService, error) {
	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	if slotMinutes <= 0 {
		slotMinutes = 30
	}
	return &GoogleCalendarService{
		svc:         svc,
		calendarID:  calendarID,
		tz:          tz,
		slotMinutes: slotMinutes,
	}, nil
}

// GetAvailableSlots computes the open slots for a date by walking the
// business-hours grid and subtracting the calendar's busy windows.
func (g *GoogleCalendarService) GetAvailableSlots(ctx context.Context, date, serviceType string) ([]models.Slot, error) {
	day, err := time.ParseInLocation("2006-01-02", date, g.tz.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	dayStart := day.Add(time.Duration(openingMinute) * time.Minute)
	dayEnd := day.Add(time.Duration(closingMinute) * time.Minute)

	fb, err := g.svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: dayStart.Format(time.RFC3339),
		TimeMax: dayEnd.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar freebusy query failed: %w", err)
	}

	var busy []interval
	if cal, ok := fb.Calendars[g.calendarID]; ok {
		for _, b := range cal.Busy {
			start, err1 := time.Parse(time.RFC3339, b.Start)
			end, err2 := time.Parse(time.RFC3339, b.End)
			if err1 != nil || err2 != nil {
				continue
			}
			busy = append(busy, interval{start: start, end: end})
		}
	}

	step := time.Duration(g.slotMinutes) * time.Minute
	var slots []models.Slot
	for cursor := dayStart; !cursor.Add(step).After(dayEnd); cursor = cursor.Add(step) {
		if overlapsAny(cursor, cursor.Add(step), busy) {
			continue
		}
		end := cursor.Add(step)
		slots = append(slots, models.Slot{
			Start:     cursor.Format(time.RFC3339),
			End:       end.Format(time.RFC3339),
			StartTime: cursor.Format("3:04 PM"),
			EndTime:   end.Format("3:04 PM"),
		})
	}
	return slots, nil
}

// BookAppointment creates the event on the clinic calendar.
func (g *GoogleCalendarService) BookAppointment(ctx context.Context, req BookingRequest) (string, error) {
	summary := fmt.Sprintf("%s - %s", req.ServiceType, req.CustomerName)
	var desc strings.Builder
	fmt.Fprintf(&desc, "Customer: %s\nPhone: %s\n", req.CustomerName, req.CustomerPhone)
	if req.CustomerEmail != "" {
		fmt.Fprintf(&desc, "Email: %s\n", req.CustomerEmail)
	}
	if req.Provider != "" {
		fmt.Fprintf(&desc, "Provider: %s\n", req.Provider)
	}
	if req.Notes != "" {
		fmt.Fprintf(&desc, "Notes: %s\n", req.Notes)
	}

	event := &gcal.Event{
		Summary:     summary,
		Description: desc.String(),
		Start:       &gcal.EventDateTime{DateTime: req.StartTime, TimeZone: g.tz.Location().String()},
		End:         &gcal.EventDateTime{DateTime: req.EndTime, TimeZone: g.tz.Location().String()},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar event insert failed: %w", err)
	}
	return created.Id, nil
}

// RescheduleAppointment moves an existing event to a new window.
func (g *GoogleCalendarService) RescheduleAppointment(ctx context.Context, eventID, newStartTime, newEndTime string) (bool, error) {
	event, err := g.svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("calendar event fetch failed: %w", err)
	}
	event.Start = &gcal.EventDateTime{DateTime: newStartTime, TimeZone: g.tz.Location().String()}
	event.End = &gcal.EventDateTime{DateTime: newEndTime, TimeZone: g.tz.Location().String()}

	if _, err := g.svc.Events.Update(g.calendarID, eventID, event).Context(ctx).Do(); err != nil {
		return false, fmt.Errorf("calendar event update failed: %w", err)
	}
	return true, nil
}

// CancelAppointment deletes an event; an already-deleted event counts as
// cancelled.
func (g *GoogleCalendarService) CancelAppointment(ctx context.Context, eventID string) (bool, error) {
	err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && (apiErr.Code == 404 || apiErr.Code == 410) {
			return true, nil
		}
		return false, fmt.Errorf("calendar event delete failed: %w", err)
	}
	return true, nil
}

// GetAppointmentDetails fetches an event; nil when the event does not exist.
func (g *GoogleCalendarService) GetAppointmentDetails(ctx context.Context, eventID string) (*models.AppointmentDetails, error) {
	event, err := g.svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("calendar event fetch failed: %w", err)
	}

	details := &models.AppointmentDetails{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Status:      event.Status,
	}
	if event.Start != nil {
		details.Start = event.Start.DateTime
	}
	if event.End != nil {
		details.End = event.End.DateTime
	}
	return details, nil
}

type interval struct {
	start, end time.Time
}

func overlapsAny(start, end time.Time, busy []interval) bool {
	for _, b := range busy {
		if start.Before(b.end) && b.start.Before(end) {
			return true
		}
	}
	return false
}
