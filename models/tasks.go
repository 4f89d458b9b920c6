package models

// CalendarSyncPayload is queued after a booking is created or cancelled.
type CalendarSyncPayload struct {
	BookingID string `json:"bookingId"`
	Action    string `json:"action"` // "create" or "cancel"
}
