package models

// BookingParams is the input to the booking orchestrator, shaped to match the
// LLM tool-call schema for book_appointment.
type BookingParams struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
	StartTime     string `json:"start_time"`
	ServiceType   string `json:"service_type"`
	Provider      string `json:"provider,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// BookingResult is the uniform success/failure shape returned to channel
// adapters and to the tool-calling layer. It is transient, never persisted.
type BookingResult struct {
	Success           bool   `json:"success"`
	EventID           string `json:"event_id,omitempty"`
	StartTime         string `json:"start_time,omitempty"`
	OriginalStartTime string `json:"original_start_time,omitempty"`
	WasAutoAdjusted   bool   `json:"was_auto_adjusted"`
	Error             string `json:"error,omitempty"`
	AvailableSlots    []Slot `json:"available_slots,omitempty"`
	Service           string `json:"service,omitempty"`
	ServiceType       string `json:"service_type,omitempty"`
	Provider          string `json:"provider,omitempty"`
	DurationMinutes   int    `json:"duration_minutes,omitempty"`
	Notes             string `json:"notes,omitempty"`
	DepositRequired   bool   `json:"deposit_required,omitempty"`
	DepositClientKey  string `json:"deposit_client_secret,omitempty"`
}

// CheckAvailabilityResult is the tool-call compatible result of an
// availability check. AvailableSlots is bounded by the caller's limit;
// AllSlots carries the full enforcement set.
type CheckAvailabilityResult struct {
	Success        bool   `json:"success"`
	AvailableSlots []Slot `json:"available_slots"`
	AllSlots       []Slot `json:"all_slots,omitempty"`
	Date           string `json:"date,omitempty"`
	Service        string `json:"service,omitempty"`
	Error          string `json:"error,omitempty"`
}

// AppointmentDetails mirrors the calendar backend's event view.
type AppointmentDetails struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status"`
}
