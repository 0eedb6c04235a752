package models

// ReminderPayload is the asynq task payload for an appointment reminder.
type ReminderPayload struct {
	EventID       string `json:"eventId"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Channel       string `json:"channel"`
	Service       string `json:"service"`
	StartTime     string `json:"startTime"` // ISO-8601
	FireDate      string `json:"fireDate"`
}
