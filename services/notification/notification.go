// File: services/notification/notification.go
package notification

import (
	"context"
	"fmt"

	"glowdesk/utils"

	"firebase.google.com/go/v4/messaging"
)

// Service sends FCM pushes to clinic staff devices.
type Service interface {
	NotifyStaff(ctx context.Context, title, body string, data map[string]string) error
}

// DefaultNotificationService pushes to the clinic's staff topic; every staff
// device subscribes to it at login.
type DefaultNotificationService struct {
	StaffTopic string
}

func NewDefaultNotificationService(staffTopic string) *DefaultNotificationService {
	if staffTopic == "" {
		staffTopic = "clinic-staff"
	}
	return &DefaultNotificationService{StaffTopic: staffTopic}
}

// NotifyStaff sends a push to the staff topic.
func (s *DefaultNotificationService) NotifyStaff(ctx context.Context, title, body string, data map[string]string) error {
	client := utils.GetFCMClient()
	if client == nil {
		return fmt.Errorf("NotifyStaff: FCM client not initialized")
	}

	msg := &messaging.Message{
		Topic: s.StaffTopic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := client.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyStaff: failed to send push: %w", err)
	}
	return nil
}
