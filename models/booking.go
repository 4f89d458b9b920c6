package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
	BookingFailed    BookingStatus = "failed"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted, BookingFailed:
		return true
	}
	return false
}

// Calendar sync states recorded on a booking.
const (
	CalendarSyncSynced    = "synced"
	CalendarSyncFailed    = "failed"
	CalendarSyncCancelled = "cancelled"
)

// Booking represents a customer's ride reservation.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	CustomerName     string        `bson:"customerName" json:"customerName"`
	CustomerEmail    string        `bson:"customerEmail" json:"customerEmail"`
	CustomerPhone    string        `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	PickupLocation   string        `bson:"pickupLocation" json:"pickupLocation"`
	DropoffLocation  string        `bson:"dropoffLocation" json:"dropoffLocation"`
	Date             string        `bson:"date" json:"date"`         // "YYYY-MM-DD"
	TimeSlot         string        `bson:"timeSlot" json:"timeSlot"` // "HH:MM-HH:MM"
	PassengerCount   int           `bson:"passengerCount" json:"passengerCount"`
	IsAirportRoute   bool          `bson:"isAirportRoute" json:"isAirportRoute"`
	Notes            string        `bson:"notes,omitempty" json:"notes,omitempty"`
	EstimatedPrice   float64       `bson:"estimatedPrice" json:"estimatedPrice"`
	FareBreakdown    FareBreakdown `bson:"fareBreakdown" json:"fareBreakdown"`
	Status           BookingStatus `bson:"status" json:"status"`
	PaymentIntentID  string        `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	GoogleEventID    string        `bson:"googleEventId,omitempty" json:"googleEventId,omitempty"`
	GoogleCalendarID string        `bson:"googleCalendarId,omitempty" json:"googleCalendarId,omitempty"`
	GoogleSyncStatus string        `bson:"googleSyncStatus,omitempty" json:"googleSyncStatus,omitempty"`
	GoogleSyncedAt   *time.Time    `bson:"googleSyncedAt,omitempty" json:"googleSyncedAt,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
}

// BookingInput is the customer-supplied part of a booking.
type BookingInput struct {
	CustomerName    string `json:"customerName" binding:"required"`
	CustomerEmail   string `json:"customerEmail" binding:"required"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	PickupLocation  string `json:"pickupLocation" binding:"required"`
	DropoffLocation string `json:"dropoffLocation" binding:"required"`
	Date            string `json:"date" binding:"required"`
	TimeSlot        string `json:"timeSlot" binding:"required"`
	PassengerCount  int    `json:"passengerCount"`
	IsAirportRoute  bool   `json:"isAirportRoute"`
	Notes           string `json:"notes,omitempty"`
}

// CalendarInfo is written back after a calendar sync attempt.
type CalendarInfo struct {
	EventID    string
	CalendarID string
	SyncStatus string
	SyncedAt   time.Time
}

// DashboardStats summarises bookings for the admin dashboard.
type DashboardStats struct {
	TodayRides      int     `json:"todayRides"`
	TodayRevenue    float64 `json:"todayRevenue"`
	PendingBookings int     `json:"pendingBookings"`
	MonthlyRides    int     `json:"monthlyRides"`
}
